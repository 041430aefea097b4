package services_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"mindhaven/internal/domain/entities"
	repocontants "mindhaven/internal/domain/interfaces/repository/contants"
	"mindhaven/internal/infra/logger"
	"mindhaven/internal/infra/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture() (*services.AnalyticsService, *memoryRepository[entities.ChatMessage], *memoryRepository[entities.MoodEntry]) {
	messageRepo := newMemoryRepository(
		func(m entities.ChatMessage) string { return m.UserID },
		func(m entities.ChatMessage) time.Time { return m.Timestamp },
		func(m entities.ChatMessage) string { return m.ID },
	)
	moodRepo := newMemoryRepository(
		func(m entities.MoodEntry) string { return m.UserID },
		func(m entities.MoodEntry) time.Time { return m.Timestamp },
		func(m entities.MoodEntry) string { return m.ID },
	)
	log := logger.NewLogger(context.Background(), false)
	return services.NewAnalyticsService(log, messageRepo, moodRepo), messageRepo, moodRepo
}

func TestUserAnalyticsAggregation(t *testing.T) {
	service, messageRepo, moodRepo := newAnalyticsFixture()
	ctx := context.Background()
	now := time.Now().UTC()

	nineAM := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)
	messages := []entities.ChatMessage{
		{ID: "m1", UserID: "user-1", Content: "hello there", Classification: entities.ClassificationGeneral, Timestamp: nineAM},
		{ID: "m2", UserID: "user-1", Content: "I feel sad", Classification: entities.ClassificationEmotional, Timestamp: nineAM.Add(time.Hour)},
		{ID: "m3", UserID: "someone-else", Content: "not mine", Classification: entities.ClassificationGeneral, Timestamp: nineAM},
		{ID: "m4", UserID: "user-1", Content: "ancient", Classification: entities.ClassificationGeneral, Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, message := range messages {
		_, err := messageRepo.Create(ctx, repocontants.MESSAGES_COLLECTION, message)
		require.NoError(t, err)
	}

	moods := []entities.MoodEntry{
		{ID: "e1", UserID: "user-1", MoodScore: 2, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "e2", UserID: "user-1", MoodScore: 7, Timestamp: now.Add(-time.Hour)},
	}
	for _, entry := range moods {
		_, err := moodRepo.Create(ctx, repocontants.MOOD_ENTRIES_COLLECTION, entry)
		require.NoError(t, err)
	}

	analytics, err := service.UserAnalytics(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, analytics.TotalInteractions)
	assert.Equal(t, 1, analytics.HourDistribution[9])
	assert.Equal(t, 1, analytics.HourDistribution[10])
	assert.Equal(t, []int{1, 0, 0, 1, 0}, analytics.MoodDistribution)
	assert.InDelta(t, 4.5, analytics.AverageMood, 0.001)
	require.Len(t, analytics.RecentActivities, 2)
	assert.Equal(t, "I feel sad", analytics.RecentActivities[0].Description)
}

func TestRecentActivityTruncationKeepsValidUTF8(t *testing.T) {
	service, messageRepo, _ := newAnalyticsFixture()
	ctx := context.Background()

	// 30 three-byte runes, 90 bytes total. A byte-level cut at 80 would
	// land inside a rune.
	content := strings.Repeat("…", 30)
	_, err := messageRepo.Create(ctx, repocontants.MESSAGES_COLLECTION, entities.ChatMessage{
		ID:             "m1",
		UserID:         "user-1",
		Content:        content,
		Classification: entities.ClassificationGeneral,
		Timestamp:      time.Now().UTC(),
	})
	require.NoError(t, err)

	analytics, err := service.UserAnalytics(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, analytics.RecentActivities, 1)
	description := analytics.RecentActivities[0].Description
	assert.True(t, utf8.ValidString(description))
	assert.Less(t, len(description), len(content))
	assert.True(t, strings.HasSuffix(description, "..."))
}

func TestCurrentMoodUsesLatestEntry(t *testing.T) {
	service, _, moodRepo := newAnalyticsFixture()
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := moodRepo.Create(ctx, repocontants.MOOD_ENTRIES_COLLECTION, entities.MoodEntry{ID: "e1", UserID: "user-1", MoodScore: 3, Timestamp: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = moodRepo.Create(ctx, repocontants.MOOD_ENTRIES_COLLECTION, entities.MoodEntry{ID: "e2", UserID: "user-1", MoodScore: 9, Timestamp: now})
	require.NoError(t, err)

	mood, err := service.CurrentMood(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 9.0, mood)
}

func TestCurrentMoodWithoutEntries(t *testing.T) {
	service, _, _ := newAnalyticsFixture()

	mood, err := service.CurrentMood(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, mood)
}
