package dto

import "mindhaven/internal/domain/entities"

type SendMessageRequest struct {
	Content string `json:"content"`
}

// ChatReply is the synchronous result of classifying one inbound message.
type ChatReply struct {
	Response       string                  `json:"response"`
	Classification entities.Classification `json:"classification"`
	Metadata       map[string]any          `json:"metadata"`
}

type MoodEntryRequest struct {
	MoodScore   int      `json:"mood_score"`
	Description string   `json:"mood_description"`
	Activities  []string `json:"activities"`
	Emotions    []string `json:"emotions"`
}
