package db

import (
	"context"
	"time"

	"greennest/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	PlantsCollection *mongo.Collection
	OrdersCollection *mongo.Collection
	UserCollection   *mongo.Collection
	CartCollection   *mongo.Collection
	Client           *mongo.Client
)

// Connect opens the MongoDB connection and binds the collection handles.
// It is called once from main; Close is deferred there so the handle has an
// explicit lifecycle instead of living in an init.
func Connect() error {
	uri := globals.EnvOr("MONGODB_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	database := client.Database(globals.EnvOr("MONGODB_DB", "greennest"))
	PlantsCollection = database.Collection("plants")
	OrdersCollection = database.Collection("orders")
	UserCollection = database.Collection("users")
	CartCollection = database.Collection("carts")

	return nil
}

func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
