package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
	"mindhaven/internal/infra/auth"
	"mindhaven/internal/infra/logger"
	"mindhaven/internal/infra/realtime"
	"mindhaven/internal/infra/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversationService struct {
	mu            sync.Mutex
	lastMessage   string
	checkInErr    error
	replyOverride *dto.ChatReply
}

func (s *stubConversationService) SendMessage(ctx context.Context, userID string, content string) (dto.ChatReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessage = content
	if s.replyOverride != nil {
		return *s.replyOverride, nil
	}
	return dto.ChatReply{
		Response:       "I hear you. Would you like to tell me more?",
		Classification: entities.ClassificationGeneral,
		Metadata:       map[string]any{},
	}, nil
}

func (s *stubConversationService) StartCheckIn(ctx context.Context, userID string) (dto.ChatReply, error) {
	if s.checkInErr != nil {
		return dto.ChatReply{}, s.checkInErr
	}
	return dto.ChatReply{
		Response:       "Let's do your daily check-in! How are you feeling today? (1-10)",
		Classification: entities.ClassificationCheckIn,
		Metadata:       map[string]any{"question": 0},
	}, nil
}

func (s *stubConversationService) RecentMessages(ctx context.Context, userID string, limit int64) ([]entities.ChatMessage, error) {
	return nil, nil
}

func (s *stubConversationService) RecentCheckIns(ctx context.Context, userID string, limit int64) ([]entities.CheckInRecord, error) {
	return nil, nil
}

type recordingChannel struct {
	mu   sync.Mutex
	sent []any
}

func (c *recordingChannel) Accept() error { return nil }

func (c *recordingChannel) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, payload)
	return nil
}

func (c *recordingChannel) Close() error { return nil }

func newWebSocketFixture(t *testing.T, conversation *stubConversationService) (*WebSocketHandlers, *realtime.Registry) {
	t.Helper()
	log := logger.NewLogger(context.Background(), false)
	registry := realtime.NewRegistry(log)
	identity := auth.NewTokenService("test-secret", log)
	return NewWebSocketHandlers(log, identity, conversation, registry), registry
}

func TestHandleEnvelopeIgnoresMalformedPayload(t *testing.T) {
	conversation := &stubConversationService{}
	handlers, registry := newWebSocketFixture(t, conversation)
	channel := &recordingChannel{}
	require.NoError(t, registry.Register("user-1", channel))

	handlers.handleEnvelope(context.Background(), "user-1", []byte("{not json"), channel)

	// The channel stays registered and received nothing beyond the
	// handshake.
	assert.Equal(t, 1, registry.ChannelCount("user-1"))
	channel.mu.Lock()
	assert.Empty(t, channel.sent)
	channel.mu.Unlock()
}

func TestHandleEnvelopeChatMessageFansOut(t *testing.T) {
	conversation := &stubConversationService{}
	handlers, registry := newWebSocketFixture(t, conversation)
	tabOne := &recordingChannel{}
	tabTwo := &recordingChannel{}
	require.NoError(t, registry.Register("user-1", tabOne))
	require.NoError(t, registry.Register("user-1", tabTwo))

	payload, _ := json.Marshal(dto.InboundEnvelope{Type: dto.EnvelopeChatMessage, Content: "hello"})
	handlers.handleEnvelope(context.Background(), "user-1", payload, tabOne)

	for _, channel := range []*recordingChannel{tabOne, tabTwo} {
		channel.mu.Lock()
		require.Len(t, channel.sent, 1)
		envelope, ok := channel.sent[0].(dto.ChatEnvelope)
		channel.mu.Unlock()
		require.True(t, ok)
		assert.Equal(t, dto.EnvelopeBotMessage, envelope.Type)
		assert.Equal(t, entities.ClassificationGeneral, envelope.Classification)
	}
	assert.Equal(t, "hello", conversation.lastMessage)
}

func TestHandleEnvelopeCheckInConflictGoesToSender(t *testing.T) {
	conversation := &stubConversationService{checkInErr: services.ErrCheckInAlreadyCompleted}
	handlers, registry := newWebSocketFixture(t, conversation)
	sender := &recordingChannel{}
	other := &recordingChannel{}
	require.NoError(t, registry.Register("user-1", sender))
	require.NoError(t, registry.Register("user-1", other))

	payload, _ := json.Marshal(dto.InboundEnvelope{Type: dto.EnvelopeStartCheckIn})
	handlers.handleEnvelope(context.Background(), "user-1", payload, sender)

	sender.mu.Lock()
	require.Len(t, sender.sent, 1)
	errorEnvelope, ok := sender.sent[0].(dto.ErrorEnvelope)
	sender.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, dto.EnvelopeError, errorEnvelope.Type)

	other.mu.Lock()
	assert.Empty(t, other.sent)
	other.mu.Unlock()
}

func TestSendMessageEndpoint(t *testing.T) {
	log := logger.NewLogger(context.Background(), false)
	identity := auth.NewTokenService("test-secret", log)
	conversation := &stubConversationService{}
	handlers := NewChatHandlers(log, identity, conversation)

	token, err := identity.Issue("user-1", time.Minute)
	require.NoError(t, err)

	body, _ := json.Marshal(dto.SendMessageRequest{Content: "hello"})
	request := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handlers.SendMessage(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var reply dto.ChatReply
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&reply))
	assert.Equal(t, entities.ClassificationGeneral, reply.Classification)
	assert.NotEmpty(t, reply.Response)
}

func TestSendMessageEndpointRejectsMissingToken(t *testing.T) {
	log := logger.NewLogger(context.Background(), false)
	identity := auth.NewTokenService("test-secret", log)
	handlers := NewChatHandlers(log, identity, &stubConversationService{})

	body, _ := json.Marshal(dto.SendMessageRequest{Content: "hello"})
	request := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	handlers.SendMessage(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestStartCheckInEndpointConflict(t *testing.T) {
	log := logger.NewLogger(context.Background(), false)
	identity := auth.NewTokenService("test-secret", log)
	conversation := &stubConversationService{checkInErr: services.ErrCheckInAlreadyCompleted}
	handlers := NewChatHandlers(log, identity, conversation)

	token, err := identity.Issue("user-1", time.Minute)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/chat/checkin/start", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handlers.StartCheckIn(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}
