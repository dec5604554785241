package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvgboard/mvgboard/pkg/util"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MongoGlobalInstance is nil when mongo is not configured; the result
// archive is optional.
var MongoGlobalInstance *MongoInstance

const defaultDatabase = "mvgboard"

// Connect sets up the shared mongo connection. Skipped entirely when
// MVGBOARD_MONGODB_CONNECTION is unset.
func Connect() error {
	env := util.GetEnvironmentVariables()

	connectionString := env["MVGBOARD_MONGODB_CONNECTION"]
	if connectionString == "" {
		return nil
	}

	dbName := defaultDatabase
	if env["MVGBOARD_MONGODB_DATABASE"] != "" {
		dbName = env["MVGBOARD_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return err
	}

	createIndexes()

	return nil
}

func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
