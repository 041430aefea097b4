package services

import (
	"context"
	"fmt"
	"time"

	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
	"mindhaven/internal/domain/interfaces/repository"
	repocontants "mindhaven/internal/domain/interfaces/repository/contants"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/logger"

	"github.com/google/uuid"
)

type MoodService struct {
	Logger           *logger.Logger
	MoodRepository   repository.Repository[entities.MoodEntry]
	SentimentService Iservices.ISentimentService
}

func NewMoodService(logger *logger.Logger, moodRepository repository.Repository[entities.MoodEntry], sentimentService Iservices.ISentimentService) *MoodService {
	return &MoodService{Logger: logger, MoodRepository: moodRepository, SentimentService: sentimentService}
}

// CreateEntry stores a mood entry enriched with the sentiment analysis of
// its description.
func (ms *MoodService) CreateEntry(ctx context.Context, userID string, input dto.MoodEntryRequest) (entities.MoodEntry, error) {
	score, analysis := ms.SentimentService.AnalyzeMood(input.Description)

	entry := entities.MoodEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		MoodScore:      input.MoodScore,
		Description:    input.Description,
		Activities:     input.Activities,
		Emotions:       input.Emotions,
		SentimentScore: score,
		Analysis:       analysis,
		Timestamp:      time.Now().UTC(),
	}

	created, err := ms.MoodRepository.Create(ctx, repocontants.MOOD_ENTRIES_COLLECTION, entry)
	if err != nil {
		ms.Logger.Error(fmt.Sprintf("Failed to create mood entry for %s: %v", userID, err))
		return entities.MoodEntry{}, err
	}
	return created, nil
}

func (ms *MoodService) RecentEntries(ctx context.Context, userID string, limit int64) ([]entities.MoodEntry, error) {
	return ms.MoodRepository.FindRecentByUser(ctx, repocontants.MOOD_ENTRIES_COLLECTION, userID, limit)
}
