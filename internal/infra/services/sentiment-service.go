package services

import (
	"strings"

	"mindhaven/internal/domain/entities"
	"mindhaven/internal/infra/logger"
)

// SentimentService is a mock stand-in for the model-backed scorer. Output
// is derived from a stable hash of the text so repeated analysis of the
// same description returns the same result.
type SentimentService struct {
	Logger *logger.Logger
}

func NewSentimentService(logger *logger.Logger) *SentimentService {
	return &SentimentService{Logger: logger}
}

var sentimentEmotions = []string{
	"happy", "sad", "anxious", "calm", "frustrated",
	"excited", "tired", "hopeful", "worried", "content",
}

var sentimentTriggers = []string{
	"work stress", "relationship issues",
	"lack of sleep", "health concerns",
	"financial worry", "family matters",
	"social situations", "past experiences",
	"future uncertainty", "daily responsibilities",
}

var riskKeywords = []string{"hopeless", "worthless", "suicide", "die", "end it"}

// AnalyzeMood scores a mood description in [-1, 1] and tags it.
func (ss *SentimentService) AnalyzeMood(description string) (float64, entities.SentimentAnalysis) {
	seed := stableHash(description)

	score := float64(int32(seed%201)-100) / 100.0

	riskLevel := "low"
	lowered := strings.ToLower(description)
	for _, keyword := range riskKeywords {
		if strings.Contains(lowered, keyword) {
			riskLevel = "high"
			score = -0.9
			break
		}
	}

	analysis := entities.SentimentAnalysis{
		Emotions: []string{
			sentimentEmotions[seed%uint32(len(sentimentEmotions))],
			sentimentEmotions[(seed/7)%uint32(len(sentimentEmotions))],
		},
		RiskLevel:        riskLevel,
		Triggers:         []string{sentimentTriggers[(seed/13)%uint32(len(sentimentTriggers))]},
		CopingStrategies: copingStrategies["short_term"],
	}

	return score, analysis
}
