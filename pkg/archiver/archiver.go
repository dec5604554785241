package archiver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvgboard/mvgboard/pkg/database"
	"github.com/mvgboard/mvgboard/pkg/departures"
)

const collectionName = "board_results"

// Recorder archives every delivered result into mongo so that board history
// (including degraded cycles and their failure tags) can be inspected later.
type Recorder struct{}

func (Recorder) Record(result departures.Result) {
	boardResultsCollection := database.GetCollection(collectionName)

	_, err := boardResultsCollection.InsertOne(context.Background(), result)
	if err != nil {
		log.Error().Err(err).Str("identifier", result.Identifier).Msg("Failed to archive result")
	}
}

// RecentResults returns the most recently archived results for an
// identifier, newest first.
func RecentResults(ctx context.Context, identifier string, count int) ([]departures.Result, error) {
	boardResultsCollection := database.GetCollection(collectionName)

	opts := options.Find().
		SetSort(bson.D{{Key: "generatedat", Value: -1}}).
		SetLimit(int64(count))

	cursor, err := boardResultsCollection.Find(ctx, bson.M{"identifier": identifier}, opts)
	if err != nil {
		return nil, err
	}

	results := []departures.Result{}
	for cursor.Next(ctx) {
		var result departures.Result
		if err := cursor.Decode(&result); err != nil {
			log.Error().Err(err).Msg("Failed to decode archived result")
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

// Prune deletes archived results older than the cutoff and returns how many
// were removed.
func Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	boardResultsCollection := database.GetCollection(collectionName)

	deleted, err := boardResultsCollection.DeleteMany(ctx, bson.M{"generatedat": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}

	return deleted.DeletedCount, nil
}
