package entities

import "time"

// Classification is the closed set of labels the dialogue engine assigns to
// an inbound message. Exactly one value is attached to every bot reply.
type Classification string

const (
	ClassificationGeneral      Classification = "general"
	ClassificationCheckIn      Classification = "check_in"
	ClassificationCrisis       Classification = "crisis"
	ClassificationSupportGroup Classification = "support_group"
	ClassificationEmotional    Classification = "emotional"
)

// ConversationContext is the per-user mutable dialogue state. It is loaded
// and upserted by user id; the check-in fields drive the guided
// questionnaire sub-flow.
type ConversationContext struct {
	UserID          string            `json:"user_id" bson:"user_id"`
	InCheckIn       bool              `json:"in_check_in" bson:"in_check_in"`
	CheckInQuestion int               `json:"check_in_question" bson:"check_in_question"`
	Responses       map[string]string `json:"responses" bson:"responses"`
	Priority        bool              `json:"priority" bson:"priority"`
	UpdatedAt       time.Time         `json:"updated_at" bson:"updated_at"`
}

// ChatMessage is append-only; it is never mutated after creation.
type ChatMessage struct {
	ID             string         `json:"id" bson:"_id"`
	UserID         string         `json:"user_id" bson:"user_id"`
	Content        string         `json:"content" bson:"content"`
	IsBot          bool           `json:"is_bot" bson:"is_bot"`
	Classification Classification `json:"classification" bson:"classification"`
	Timestamp      time.Time      `json:"timestamp" bson:"timestamp"`
}
