package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	Client        *mongo.Client
	Usuarios      *mongo.Collection
	Publicaciones *mongo.Collection
)

func Init() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		// Fallback for local dev if not set
		uri = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "red_social_universitaria"
	}

	var err error
	Client, err = mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	database := Client.Database(dbName)
	Usuarios = database.Collection("usuarios")
	Publicaciones = database.Collection("publicaciones")

	ensureIndexes(ctx)
}

// ensureIndexes creates the unique email index that backs the duplicate
// registration guard.
func ensureIndexes(ctx context.Context) {
	_, err := Usuarios.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create email index: %v", err)
	}
	log.Println("Database indexes ensured")
}
