package entities

import "time"

// CheckInRecord is the daily self-assessment record. At most one
// non-completed record exists per user per calendar day; the scored fields
// are filled in when the questionnaire completes.
type CheckInRecord struct {
	ID           string            `json:"id" bson:"_id"`
	UserID       string            `json:"user_id" bson:"user_id"`
	Completed    bool              `json:"completed" bson:"completed"`
	MoodScore    *int              `json:"mood_score,omitempty" bson:"mood_score,omitempty"`
	SleepQuality *int              `json:"sleep_quality,omitempty" bson:"sleep_quality,omitempty"`
	AnxietyLevel *int              `json:"anxiety_level,omitempty" bson:"anxiety_level,omitempty"`
	Responses    map[string]string `json:"responses" bson:"responses"`
	Timestamp    time.Time         `json:"timestamp" bson:"timestamp"`
}
