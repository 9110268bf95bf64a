package mongodb

import (
	"context"
	"log"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	commentsCollection = "comments"
)

// Connect подключается к MongoDB и проверяет соединение пингом
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	log.Println("Successfully connected to MongoDB.")
	return client, nil
}

func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "failed to disconnect from mongo")
	}
	log.Println("MongoDB connection closed.")
	return nil
}

// EnsureIndexes уникальный email и индексы для поиска по автору/посту
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create users.email index")
	}

	_, err = db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdBy", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create posts.createdBy index")
	}

	_, err = db.Collection(commentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "postId", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create comments indexes")
	}

	return nil
}

func objectID(id models.ID) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(string(id))
	if err != nil {
		return bson.ObjectID{}, errors.Wrapf(storage.ErrNotFound, "invalid id %q", id)
	}
	return oid, nil
}

// objectIDs невалидные идентификаторы пропускаются: таких документов все равно нет
func objectIDs(ids []models.ID) []bson.ObjectID {
	result := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(string(id)); err == nil {
			result = append(result, oid)
		}
	}
	return result
}

func toIDs(oids []bson.ObjectID) []models.ID {
	result := make([]models.ID, 0, len(oids))
	for _, oid := range oids {
		result = append(result, models.ID(oid.Hex()))
	}
	return result
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.Wrapf(storage.ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
