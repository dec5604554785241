package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func createIndexes() {
	boardResultsCollection := GetCollection("board_results")

	_, err := boardResultsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "identifier", Value: 1}, {Key: "generatedat", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "generatedat", Value: 1}},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create board_results indexes")
	}
}
