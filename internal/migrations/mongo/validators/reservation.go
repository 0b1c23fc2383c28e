package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"resource_type", "start_date", "end_date", "pet_count", "status"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"resource_id":   bson.M{"bsonType": "objectId"},
			"resource_type": bson.M{"bsonType": "string"},
			"start_date":    bson.M{"bsonType": "date"},
			"end_date":      bson.M{"bsonType": "date"},
			"pet_count":     bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 20},
			"status": bson.M{
				"enum": []string{"confirmed", "checked_in", "checked_out", "cancelled", "no_show"},
			},
			"external_id": bson.M{"bsonType": "string"},
			"created_at":  bson.M{"bsonType": "date"},
		},
	},
}
