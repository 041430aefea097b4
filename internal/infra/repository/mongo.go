package repository

import (
	"context"
	"errors"
	"time"

	Irepository "mindhaven/internal/domain/interfaces/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.InsertOne(ctx, entity)
	return entity, err
}

// UpsertByUserID replaces the document for the given user, creating it when
// no document matches the filter.
func (r *MongoRepository[T]) UpsertByUserID(ctx context.Context, collectionName string, userID string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"user_id": userID}

	update := bson.M{
		"$set": entity,
	}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return entity, err
}

// ReplaceByID overwrites a single document addressed by its id.
func (r *MongoRepository[T]) ReplaceByID(ctx context.Context, collectionName string, id string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"_id": id}
	_, err := collection.ReplaceOne(ctx, filter, entity, options.Replace().SetUpsert(true))
	return entity, err
}

func (r *MongoRepository[T]) FindByUserID(ctx context.Context, collectionName string, userID string) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"user_id": userID}
	err := collection.FindOne(ctx, filter).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, Irepository.ErrNotFound
	}
	return entity, err
}

// FindRecentByUser returns the newest documents first, capped at limit.
func (r *MongoRepository[T]) FindRecentByUser(ctx context.Context, collectionName string, userID string, limit int64) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeAll[T](ctx, cursor)
}

func (r *MongoRepository[T]) FindByUserSince(ctx context.Context, collectionName string, userID string, since time.Time) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": since},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeAll[T](ctx, cursor)
}

func (r *MongoRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"_id": id}
	_, err := collection.DeleteOne(ctx, filter)
	return err
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, cursor.Err()
}
