package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"mindhaven/internal/domain/interfaces/repository"
)

// memoryRepository is an in-memory Repository[T] used to test the services
// without a running MongoDB.
type memoryRepository[T any] struct {
	mu           sync.Mutex
	byCollection map[string][]T

	userIDOf    func(T) string
	timestampOf func(T) time.Time
	idOf        func(T) string

	// nextFindErr fails the next FindByUserID once, simulating a transient
	// store outage.
	nextFindErr error
}

func newMemoryRepository[T any](userIDOf func(T) string, timestampOf func(T) time.Time, idOf func(T) string) *memoryRepository[T] {
	return &memoryRepository[T]{
		byCollection: make(map[string][]T),
		userIDOf:     userIDOf,
		timestampOf:  timestampOf,
		idOf:         idOf,
	}
}

func (r *memoryRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCollection[collectionName] = append(r.byCollection[collectionName], entity)
	return entity, nil
}

func (r *memoryRepository[T]) UpsertByUserID(ctx context.Context, collectionName string, userID string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, candidate := range r.byCollection[collectionName] {
		if r.userIDOf(candidate) == userID {
			r.byCollection[collectionName][i] = entity
			return entity, nil
		}
	}
	r.byCollection[collectionName] = append(r.byCollection[collectionName], entity)
	return entity, nil
}

func (r *memoryRepository[T]) ReplaceByID(ctx context.Context, collectionName string, id string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, candidate := range r.byCollection[collectionName] {
		if r.idOf(candidate) == id {
			r.byCollection[collectionName][i] = entity
			return entity, nil
		}
	}
	r.byCollection[collectionName] = append(r.byCollection[collectionName], entity)
	return entity, nil
}

func (r *memoryRepository[T]) FindByUserID(ctx context.Context, collectionName string, userID string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nextFindErr != nil {
		err := r.nextFindErr
		r.nextFindErr = nil
		var zero T
		return zero, err
	}
	for _, candidate := range r.byCollection[collectionName] {
		if r.userIDOf(candidate) == userID {
			return candidate, nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (r *memoryRepository[T]) FindRecentByUser(ctx context.Context, collectionName string, userID string, limit int64) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []T
	for _, candidate := range r.byCollection[collectionName] {
		if r.userIDOf(candidate) == userID {
			matches = append(matches, candidate)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return r.timestampOf(matches[i]).After(r.timestampOf(matches[j]))
	})
	if int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *memoryRepository[T]) FindByUserSince(ctx context.Context, collectionName string, userID string, since time.Time) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []T
	for _, candidate := range r.byCollection[collectionName] {
		if r.userIDOf(candidate) == userID && !r.timestampOf(candidate).Before(since) {
			matches = append(matches, candidate)
		}
	}
	return matches, nil
}

func (r *memoryRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for collection, items := range r.byCollection {
		for i, candidate := range items {
			if r.idOf(candidate) == id {
				r.byCollection[collection] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
