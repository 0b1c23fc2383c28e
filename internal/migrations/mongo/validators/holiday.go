package validators

import "go.mongodb.org/mongo-driver/bson"

var HolidayValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "is_recurring", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":          bson.M{"bsonType": "objectId"},
			"name":         bson.M{"bsonType": "string"},
			"date":         bson.M{"bsonType": "date"},
			"month":        bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 12},
			"day":          bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 31},
			"is_recurring": bson.M{"bsonType": "bool"},
			"created_at":   bson.M{"bsonType": "date"},
		},
	},
}
