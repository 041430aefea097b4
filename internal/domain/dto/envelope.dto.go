package dto

import (
	"time"

	"mindhaven/internal/domain/entities"
)

// Envelope types carried over the duplex channel. The registry itself is
// payload-agnostic; these shapes belong to the handlers and the publisher.
const (
	EnvelopeConnected       = "connected"
	EnvelopeChatMessage     = "chat_message"
	EnvelopeStartCheckIn    = "start_check_in"
	EnvelopeBotMessage      = "bot_message"
	EnvelopeError           = "error"
	EnvelopeDashboardUpdate = "dashboard_update"
)

type InboundEnvelope struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type ConnectedEnvelope struct {
	Type string `json:"type"`
}

type ChatEnvelope struct {
	Type           string                  `json:"type"`
	Message        string                  `json:"message"`
	Classification entities.Classification `json:"classification"`
	Metadata       map[string]any          `json:"metadata"`
	Timestamp      time.Time               `json:"timestamp"`
}

type ErrorEnvelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
