package Iservices

import (
	"context"
	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
)

type IMoodService interface {
	CreateEntry(ctx context.Context, userID string, input dto.MoodEntryRequest) (entities.MoodEntry, error)
	RecentEntries(ctx context.Context, userID string, limit int64) ([]entities.MoodEntry, error)
}
