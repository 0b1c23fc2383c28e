package validators

import "go.mongodb.org/mongo-driver/bson"

var SuiteConfigValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"suite_type", "capacity_type", "max_pets", "pricing_type", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"suite_type":    bson.M{"bsonType": "string"},
			"capacity_type": bson.M{"enum": []string{"SINGLE", "MULTI"}},
			"max_pets":      bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 20},
			"pricing_type": bson.M{
				"enum": []string{"PER_PET", "FLAT_RATE", "TIERED", "PERCENTAGE_OFF"},
			},
			"base_price_cents":           bson.M{"bsonType": "long", "minimum": 0},
			"additional_pet_price_cents": bson.M{"bsonType": "long", "minimum": 0},
			"percentage_off":             bson.M{"bsonType": []string{"double", "int", "long"}},
			"tiered_pricing": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "object"},
			},
			"currency":   bson.M{"bsonType": "string"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
