package validators

import "go.mongodb.org/mongo-driver/bson"

var PricingRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "type", "adjustment_type", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string"},
			"description": bson.M{"bsonType": "string"},
			"type": bson.M{
				"enum": []string{
					"SEASONAL", "DAY_OF_WEEK", "PEAK_TIME", "HOLIDAY",
					"CAPACITY_BASED", "ADVANCE_BOOKING", "LAST_MINUTE",
				},
			},
			"is_active": bson.M{"bsonType": "bool"},
			"priority":  bson.M{"bsonType": []string{"int", "long"}},
			"adjustment_type": bson.M{
				"enum": []string{"PERCENTAGE", "FIXED_AMOUNT"},
			},
			"adjustment_value": bson.M{"bsonType": []string{"double", "int", "long"}},
			"valid_from":       bson.M{"bsonType": "date"},
			"valid_until":      bson.M{"bsonType": "date"},
			"seasonal":         bson.M{"bsonType": "object"},
			"day_of_week":      bson.M{"bsonType": "object"},
			"holiday":          bson.M{"bsonType": "object"},
			"capacity":         bson.M{"bsonType": "object"},
			"advance_booking":  bson.M{"bsonType": "object"},
			"last_minute":      bson.M{"bsonType": "object"},
			"created_at":       bson.M{"bsonType": "date"},
		},
	},
}
