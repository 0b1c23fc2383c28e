package validators

import "go.mongodb.org/mongo-driver/bson"

var ResourceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "resource_type", "is_active"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"name":          bson.M{"bsonType": "string"},
			"resource_type": bson.M{"bsonType": "string"},
			"suite_type":    bson.M{"bsonType": "string"},
			"is_active":     bson.M{"bsonType": "bool"},
			"created_at":    bson.M{"bsonType": "date"},
		},
	},
}
