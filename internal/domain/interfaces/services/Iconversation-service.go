package Iservices

import (
	"context"
	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
)

// IConversationService is the conversational core: classification of
// free-text input and the guided check-in sub-flow.
type IConversationService interface {
	SendMessage(ctx context.Context, userID string, content string) (dto.ChatReply, error)
	StartCheckIn(ctx context.Context, userID string) (dto.ChatReply, error)
	RecentMessages(ctx context.Context, userID string, limit int64) ([]entities.ChatMessage, error)
	RecentCheckIns(ctx context.Context, userID string, limit int64) ([]entities.CheckInRecord, error)
}
