package validators

import "go.mongodb.org/mongo-driver/bson"

var GroupEventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"owner_id",
			"participant_ids",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"participant_ids": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
				},
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-4]):[0-5]\d$`,
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-4]):[0-5]\d$`,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
