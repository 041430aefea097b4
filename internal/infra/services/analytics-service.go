package services

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
	"mindhaven/internal/domain/interfaces/repository"
	repocontants "mindhaven/internal/domain/interfaces/repository/contants"
	"mindhaven/internal/infra/logger"
)

const analyticsWindow = 7 * 24 * time.Hour

// AnalyticsService aggregates per-user interaction and mood data for the
// dashboard: interaction counts, a 24-bucket hourly activity histogram, a
// 5-bucket mood distribution and the most recent activity entries.
type AnalyticsService struct {
	Logger            *logger.Logger
	MessageRepository repository.Repository[entities.ChatMessage]
	MoodRepository    repository.Repository[entities.MoodEntry]
}

func NewAnalyticsService(logger *logger.Logger, messageRepository repository.Repository[entities.ChatMessage], moodRepository repository.Repository[entities.MoodEntry]) *AnalyticsService {
	return &AnalyticsService{Logger: logger, MessageRepository: messageRepository, MoodRepository: moodRepository}
}

func (as *AnalyticsService) UserAnalytics(ctx context.Context, userID string) (dto.UserAnalytics, error) {
	since := time.Now().UTC().Add(-analyticsWindow)

	messages, err := as.MessageRepository.FindByUserSince(ctx, repocontants.MESSAGES_COLLECTION, userID, since)
	if err != nil {
		as.Logger.Error(fmt.Sprintf("Failed to load messages for analytics of %s: %v", userID, err))
		return dto.UserAnalytics{}, err
	}

	hourDistribution := make([]int, 24)
	for _, message := range messages {
		hourDistribution[message.Timestamp.Hour()]++
	}

	moods, err := as.MoodRepository.FindByUserSince(ctx, repocontants.MOOD_ENTRIES_COLLECTION, userID, since)
	if err != nil {
		as.Logger.Error(fmt.Sprintf("Failed to load mood entries for analytics of %s: %v", userID, err))
		return dto.UserAnalytics{}, err
	}

	moodDistribution := make([]int, 5)
	moodTotal := 0
	scored := 0
	for _, entry := range moods {
		if entry.MoodScore < 1 || entry.MoodScore > 10 {
			continue
		}
		moodDistribution[(entry.MoodScore-1)/2]++
		moodTotal += entry.MoodScore
		scored++
	}

	averageMood := 0.0
	if scored > 0 {
		averageMood = float64(moodTotal) / float64(scored)
	}

	return dto.UserAnalytics{
		TotalInteractions: len(messages),
		HourDistribution:  hourDistribution,
		MoodDistribution:  moodDistribution,
		AverageMood:       averageMood,
		RecentActivities:  recentActivities(messages, 5),
	}, nil
}

// CurrentMood returns the score of the latest mood entry, or zero when the
// user has none.
func (as *AnalyticsService) CurrentMood(ctx context.Context, userID string) (float64, error) {
	entries, err := as.MoodRepository.FindRecentByUser(ctx, repocontants.MOOD_ENTRIES_COLLECTION, userID, 1)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	return float64(entries[0].MoodScore), nil
}

func recentActivities(messages []entities.ChatMessage, limit int) []dto.ActivityItem {
	latest := make([]entities.ChatMessage, len(messages))
	copy(latest, messages)

	sort.Slice(latest, func(i, j int) bool {
		return latest[i].Timestamp.After(latest[j].Timestamp)
	})

	if len(latest) > limit {
		latest = latest[:limit]
	}

	items := make([]dto.ActivityItem, 0, len(latest))
	for _, message := range latest {
		items = append(items, dto.ActivityItem{
			Type:        string(message.Classification),
			Description: truncate(message.Content, 80),
			Timestamp:   message.Timestamp,
		})
	}
	return items
}

// truncate cuts on a rune boundary so a multi-byte character is never
// split in half.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
