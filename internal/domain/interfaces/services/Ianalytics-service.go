package Iservices

import (
	"context"
	"mindhaven/internal/domain/dto"
)

type IAnalyticsService interface {
	UserAnalytics(ctx context.Context, userID string) (dto.UserAnalytics, error)
	CurrentMood(ctx context.Context, userID string) (float64, error)
}
