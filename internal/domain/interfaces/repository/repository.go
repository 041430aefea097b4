package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no document. Callers use it
// to tell an absent document apart from a store failure.
var ErrNotFound = errors.New("document not found")

type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	UpsertByUserID(ctx context.Context, collectionName string, userID string, entity T) (T, error)
	ReplaceByID(ctx context.Context, collectionName string, id string, entity T) (T, error)
	FindByUserID(ctx context.Context, collectionName string, userID string) (T, error)
	FindRecentByUser(ctx context.Context, collectionName string, userID string, limit int64) ([]T, error)
	FindByUserSince(ctx context.Context, collectionName string, userID string, since time.Time) ([]T, error)
	Delete(ctx context.Context, collectionName string, id string) error
}
