package entities

import "time"

// SentimentAnalysis is the opaque result returned by the sentiment
// collaborator for a free-text description.
type SentimentAnalysis struct {
	Emotions         []string `json:"emotions" bson:"emotions"`
	RiskLevel        string   `json:"risk_level" bson:"risk_level"`
	Triggers         []string `json:"triggers" bson:"triggers"`
	CopingStrategies []string `json:"coping_strategies" bson:"coping_strategies"`
}

type MoodEntry struct {
	ID             string            `json:"id" bson:"_id"`
	UserID         string            `json:"user_id" bson:"user_id"`
	MoodScore      int               `json:"mood_score" bson:"mood_score"`
	Description    string            `json:"mood_description" bson:"mood_description"`
	Activities     []string          `json:"activities" bson:"activities"`
	Emotions       []string          `json:"emotions" bson:"emotions"`
	SentimentScore float64           `json:"sentiment_score" bson:"sentiment_score"`
	Analysis       SentimentAnalysis `json:"ai_analysis" bson:"ai_analysis"`
	Timestamp      time.Time         `json:"timestamp" bson:"timestamp"`
}
