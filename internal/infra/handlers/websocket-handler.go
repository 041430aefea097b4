package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mindhaven/internal/domain/dto"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/logger"
	"mindhaven/internal/infra/realtime"
	"mindhaven/internal/infra/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type WebSocketHandlers struct {
	Logger              *logger.Logger
	IdentityService     Iservices.IIdentityService
	ConversationService Iservices.IConversationService
	Registry            *realtime.Registry
	upgrader            websocket.Upgrader
}

func NewWebSocketHandlers(logger *logger.Logger, identityService Iservices.IIdentityService, conversationService Iservices.IConversationService, registry *realtime.Registry) *WebSocketHandlers {
	return &WebSocketHandlers{
		Logger:              logger,
		IdentityService:     identityService,
		ConversationService: conversationService,
		Registry:            registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve authenticates the credential from the path, upgrades the
// connection and pumps inbound envelopes until the channel closes. The
// registry is touched only after authentication succeeds.
func (wh *WebSocketHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	userID, err := wh.IdentityService.Verify(token)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := wh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wh.Logger.Error(fmt.Sprintf("WebSocket upgrade failed for user %s: %v", userID, err))
		return
	}

	channel := realtime.NewWebSocketChannel(conn)
	if err := wh.Registry.Register(userID, channel); err != nil {
		wh.Logger.Error(fmt.Sprintf("Failed to register channel for user %s: %v", userID, err))
		return
	}
	defer wh.Registry.Deregister(userID, channel)
	defer channel.Close()

	for {
		// Blocks until the next inbound frame or the channel closes.
		_, data, err := conn.ReadMessage()
		if err != nil {
			wh.Logger.Info(fmt.Sprintf("Channel closed for user %s: %v", userID, err))
			return
		}
		wh.handleEnvelope(r.Context(), userID, data, channel)
	}
}

// handleEnvelope processes one inbound frame. Malformed payloads are
// logged and ignored; the channel stays open.
func (wh *WebSocketHandlers) handleEnvelope(ctx context.Context, userID string, data []byte, channel realtime.Channel) {
	var envelope dto.InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		wh.Logger.Warn(fmt.Sprintf("Malformed inbound payload from user %s, ignoring: %v", userID, err))
		return
	}

	switch envelope.Type {
	case dto.EnvelopeChatMessage:
		if strings.TrimSpace(envelope.Content) == "" {
			wh.Logger.Warn(fmt.Sprintf("Empty chat message from user %s, ignoring", userID))
			return
		}
		reply, err := wh.ConversationService.SendMessage(ctx, userID, envelope.Content)
		if err != nil {
			wh.Logger.Error(fmt.Sprintf("Failed to process chat message for %s: %v", userID, err))
			return
		}
		wh.Registry.Unicast(userID, chatEnvelope(reply))

	case dto.EnvelopeStartCheckIn:
		reply, err := wh.ConversationService.StartCheckIn(ctx, userID)
		if err != nil {
			if errors.Is(err, services.ErrCheckInAlreadyCompleted) {
				channel.Send(dto.ErrorEnvelope{Type: dto.EnvelopeError, Message: "Daily check-in already completed"})
				return
			}
			wh.Logger.Error(fmt.Sprintf("Failed to start check-in for %s: %v", userID, err))
			return
		}
		wh.Registry.Unicast(userID, chatEnvelope(reply))

	default:
		wh.Logger.Warn(fmt.Sprintf("Unknown envelope type %q from user %s, ignoring", envelope.Type, userID))
	}
}

// Health reports registry introspection counts.
func (wh *WebSocketHandlers) Health(w http.ResponseWriter, r *http.Request) {
	channelCount, userCount := wh.Registry.Introspect()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"active_connections": channelCount,
		"connected_users":    userCount,
	})
}

func chatEnvelope(reply dto.ChatReply) dto.ChatEnvelope {
	return dto.ChatEnvelope{
		Type:           dto.EnvelopeBotMessage,
		Message:        reply.Response,
		Classification: reply.Classification,
		Metadata:       reply.Metadata,
		Timestamp:      time.Now().UTC(),
	}
}
