package validators

import "go.mongodb.org/mongo-driver/bson"

var SpaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"type",
			"category",
			"capacity",
			"slots",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"sports-field",
					"workspace",
				},
			},

			"category": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"capacity": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"slots": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "start_time", "end_time"},
					"properties": bson.M{
						"id":         bson.M{"bsonType": "string"},
						"start_time": bson.M{"bsonType": "string", "pattern": `^\d{2}:\d{2}$`},
						"end_time":   bson.M{"bsonType": "string", "pattern": `^\d{2}:\d{2}$`},
					},
				},
			},
		},
	},
}
