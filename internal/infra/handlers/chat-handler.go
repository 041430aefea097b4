package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mindhaven/internal/domain/dto"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/logger"
	"mindhaven/internal/infra/services"
)

type ChatHandlers struct {
	Logger              *logger.Logger
	IdentityService     Iservices.IIdentityService
	ConversationService Iservices.IConversationService
}

func NewChatHandlers(logger *logger.Logger, identityService Iservices.IIdentityService, conversationService Iservices.IConversationService) *ChatHandlers {
	return &ChatHandlers{Logger: logger, IdentityService: identityService, ConversationService: conversationService}
}

// SendMessage is the synchronous classification endpoint, usable without a
// live channel.
func (ch *ChatHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, ch.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Content == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := ch.ConversationService.SendMessage(r.Context(), userID, request.Content)
	if err != nil {
		ch.Logger.Error(fmt.Sprintf("Failed to process message for %s: %v", userID, err))
		http.Error(w, "Error processing message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (ch *ChatHandlers) StartCheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, ch.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reply, err := ch.ConversationService.StartCheckIn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrCheckInAlreadyCompleted) {
			http.Error(w, "Daily check-in already completed", http.StatusConflict)
			return
		}
		ch.Logger.Error(fmt.Sprintf("Failed to start check-in for %s: %v", userID, err))
		http.Error(w, "Error starting check-in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (ch *ChatHandlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, ch.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages, err := ch.ConversationService.RecentMessages(r.Context(), userID, queryLimit(r, 50))
	if err != nil {
		ch.Logger.Error(fmt.Sprintf("Failed to fetch messages for %s: %v", userID, err))
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (ch *ChatHandlers) GetCheckIns(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, ch.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	checkIns, err := ch.ConversationService.RecentCheckIns(r.Context(), userID, queryLimit(r, 7))
	if err != nil {
		ch.Logger.Error(fmt.Sprintf("Failed to fetch check-ins for %s: %v", userID, err))
		http.Error(w, "Error fetching check-ins", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, checkIns)
}

func queryLimit(r *http.Request, fallback int64) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
