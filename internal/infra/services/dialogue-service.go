package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"mindhaven/internal/domain/dto"
	"mindhaven/internal/domain/entities"
	"mindhaven/internal/domain/interfaces/repository"
	repocontants "mindhaven/internal/domain/interfaces/repository/contants"
	"mindhaven/internal/infra/logger"

	"github.com/google/uuid"
)

// ErrCheckInAlreadyCompleted is returned when a check-in start is requested
// after today's check-in has been completed.
var ErrCheckInAlreadyCompleted = errors.New("daily check-in already completed")

// DialogueService is the conversational core. Classification runs a strict
// precedence chain: crisis > support-group trigger > check-in continuation
// > emotion > fallback. The first matching tier wins and no tier returns an
// error; internal misses fall through to the next tier.
type DialogueService struct {
	Logger            *logger.Logger
	ContextRepository repository.Repository[entities.ConversationContext]
	MessageRepository repository.Repository[entities.ChatMessage]
	CheckInRepository repository.Repository[entities.CheckInRecord]

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewDialogueService(
	logger *logger.Logger,
	contextRepository repository.Repository[entities.ConversationContext],
	messageRepository repository.Repository[entities.ChatMessage],
	checkInRepository repository.Repository[entities.CheckInRecord],
) *DialogueService {
	return &DialogueService{
		Logger:            logger,
		ContextRepository: contextRepository,
		MessageRepository: messageRepository,
		CheckInRepository: checkInRepository,
		userLocks:         make(map[string]*sync.Mutex),
	}
}

// lockForUser serializes context mutation per user identity. Two channels
// of the same user submitting check-in answers concurrently must be
// strictly ordered, otherwise both read the same question index and one
// answer is silently lost.
func (ds *DialogueService) lockForUser(userID string) *sync.Mutex {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	lock, ok := ds.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		ds.userLocks[userID] = lock
	}
	return lock
}

// SendMessage classifies one inbound message, persists both sides of the
// exchange and returns the bot reply. A failed history write is logged but
// never suppresses the reply.
func (ds *DialogueService) SendMessage(ctx context.Context, userID string, content string) (dto.ChatReply, error) {
	lock := ds.lockForUser(userID)
	lock.Lock()
	defer lock.Unlock()

	conversationCtx, err := ds.loadOrCreateContext(ctx, userID)
	if err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to load conversation context for %s: %v", userID, err))
		return dto.ChatReply{}, err
	}

	reply, classification, metadata := ds.respond(ctx, userID, content, &conversationCtx)

	ds.persistMessage(ctx, userID, content, false, classification)
	ds.persistMessage(ctx, userID, reply, true, classification)

	conversationCtx.UpdatedAt = time.Now().UTC()
	if _, err := ds.ContextRepository.UpsertByUserID(ctx, repocontants.CHAT_CONTEXTS_COLLECTION, userID, conversationCtx); err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to update conversation context for %s: %v", userID, err))
	}

	return dto.ChatReply{Response: reply, Classification: classification, Metadata: metadata}, nil
}

// StartCheckIn begins the daily questionnaire. Starting a second check-in
// on a day whose record is already completed is rejected with
// ErrCheckInAlreadyCompleted and leaves all state untouched.
func (ds *DialogueService) StartCheckIn(ctx context.Context, userID string) (dto.ChatReply, error) {
	lock := ds.lockForUser(userID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	today, err := ds.todaysRecord(ctx, userID, now)
	if err != nil {
		return dto.ChatReply{}, err
	}
	if today != nil && today.Completed {
		return dto.ChatReply{}, ErrCheckInAlreadyCompleted
	}

	conversationCtx, err := ds.loadOrCreateContext(ctx, userID)
	if err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to load conversation context for %s: %v", userID, err))
		return dto.ChatReply{}, err
	}
	conversationCtx.InCheckIn = true
	conversationCtx.CheckInQuestion = 0
	conversationCtx.Responses = make(map[string]string)
	conversationCtx.UpdatedAt = now

	if _, err := ds.ContextRepository.UpsertByUserID(ctx, repocontants.CHAT_CONTEXTS_COLLECTION, userID, conversationCtx); err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to store check-in context for %s: %v", userID, err))
	}

	if today == nil {
		record := entities.CheckInRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			Completed: false,
			Responses: map[string]string{},
			Timestamp: now,
		}
		if _, err := ds.CheckInRepository.Create(ctx, repocontants.CHECKINS_COLLECTION, record); err != nil {
			ds.Logger.Error(fmt.Sprintf("Failed to create check-in record for %s: %v", userID, err))
		}
	}

	prompt := fmt.Sprintf("Let's do your daily check-in! %s", checkInQuestions[0])
	ds.persistMessage(ctx, userID, prompt, true, entities.ClassificationCheckIn)

	return dto.ChatReply{
		Response:       prompt,
		Classification: entities.ClassificationCheckIn,
		Metadata:       map[string]any{"question": 0},
	}, nil
}

func (ds *DialogueService) RecentMessages(ctx context.Context, userID string, limit int64) ([]entities.ChatMessage, error) {
	return ds.MessageRepository.FindRecentByUser(ctx, repocontants.MESSAGES_COLLECTION, userID, limit)
}

func (ds *DialogueService) RecentCheckIns(ctx context.Context, userID string, limit int64) ([]entities.CheckInRecord, error) {
	return ds.CheckInRepository.FindRecentByUser(ctx, repocontants.CHECKINS_COLLECTION, userID, limit)
}

// respond walks the precedence chain. It mutates the conversation context
// in place; the caller persists it afterwards.
func (ds *DialogueService) respond(ctx context.Context, userID string, content string, conversationCtx *entities.ConversationContext) (string, entities.Classification, map[string]any) {
	lowered := strings.ToLower(content)

	if containsAny(lowered, crisisKeywords) {
		conversationCtx.Priority = true
		return crisisResponse, entities.ClassificationCrisis, map[string]any{"priority": "high"}
	}

	for _, group := range supportGroups {
		if containsAny(lowered, group.Triggers) {
			reply := fmt.Sprintf("I notice you mentioned something related to %s. Would you like information about support resources?", group.Name)
			return reply, entities.ClassificationSupportGroup, map[string]any{
				"group":     string(group.ID),
				"resources": group.Resources,
			}
		}
	}

	if conversationCtx.InCheckIn {
		return ds.continueCheckIn(ctx, userID, content, conversationCtx)
	}

	for _, pattern := range emotionPatterns {
		if containsAny(lowered, pattern.Keywords) {
			reply, metadata := emotionResponse(pattern.Emotion)
			return reply, entities.ClassificationEmotional, metadata
		}
	}

	reply := fallbackResponses[stableHash(content)%uint32(len(fallbackResponses))]
	return reply, entities.ClassificationGeneral, map[string]any{}
}

// continueCheckIn records the answer for the current question and advances
// the questionnaire. Reaching the end closes the sub-flow and scores
// today's record.
func (ds *DialogueService) continueCheckIn(ctx context.Context, userID string, answer string, conversationCtx *entities.ConversationContext) (string, entities.Classification, map[string]any) {
	if conversationCtx.Responses == nil {
		conversationCtx.Responses = make(map[string]string)
	}

	index := conversationCtx.CheckInQuestion
	conversationCtx.Responses[strconv.Itoa(index)] = answer
	index++
	conversationCtx.CheckInQuestion = index

	if index >= len(checkInQuestions) {
		conversationCtx.InCheckIn = false
		ds.completeCheckIn(ctx, userID, conversationCtx.Responses)
		return "Check-in complete! Thank you for taking the time today.",
			entities.ClassificationCheckIn,
			map[string]any{"completed": true}
	}

	return checkInQuestions[index], entities.ClassificationCheckIn, map[string]any{"question": index}
}

// completeCheckIn scores and closes today's record. The first three answers
// are the mood, sleep and anxiety scores.
func (ds *DialogueService) completeCheckIn(ctx context.Context, userID string, responses map[string]string) {
	now := time.Now().UTC()
	record, err := ds.todaysRecord(ctx, userID, now)
	if err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to load today's check-in record for %s: %v", userID, err))
		return
	}
	if record == nil {
		record = &entities.CheckInRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			Timestamp: now,
		}
	}

	record.Completed = true
	record.Responses = responses
	record.MoodScore = parseScore(responses["0"])
	record.SleepQuality = parseScore(responses["1"])
	record.AnxietyLevel = parseScore(responses["2"])

	if _, err := ds.CheckInRepository.ReplaceByID(ctx, repocontants.CHECKINS_COLLECTION, record.ID, *record); err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to complete check-in record for %s: %v", userID, err))
	}
}

// todaysRecord returns the current day's check-in record, or nil when the
// user has not started one today.
func (ds *DialogueService) todaysRecord(ctx context.Context, userID string, now time.Time) (*entities.CheckInRecord, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	records, err := ds.CheckInRepository.FindByUserSince(ctx, repocontants.CHECKINS_COLLECTION, userID, dayStart)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

// loadOrCreateContext returns the stored context, or a fresh one only when
// none exists. A transient store failure propagates instead; initializing a
// new context on it would overwrite an in-progress check-in on the next
// upsert.
func (ds *DialogueService) loadOrCreateContext(ctx context.Context, userID string) (entities.ConversationContext, error) {
	conversationCtx, err := ds.ContextRepository.FindByUserID(ctx, repocontants.CHAT_CONTEXTS_COLLECTION, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return entities.ConversationContext{}, fmt.Errorf("loading conversation context: %w", err)
		}
		ds.Logger.Info(fmt.Sprintf("No conversation context for user %s yet, initializing a new one", userID))
		conversationCtx = entities.ConversationContext{
			UserID:    userID,
			Responses: map[string]string{},
		}
	}
	conversationCtx.UserID = userID
	return conversationCtx, nil
}

func (ds *DialogueService) persistMessage(ctx context.Context, userID string, content string, isBot bool, classification entities.Classification) {
	message := entities.ChatMessage{
		ID:             uuid.NewString(),
		UserID:         userID,
		Content:        content,
		IsBot:          isBot,
		Classification: classification,
		Timestamp:      time.Now().UTC(),
	}
	if _, err := ds.MessageRepository.Create(ctx, repocontants.MESSAGES_COLLECTION, message); err != nil {
		ds.Logger.Error(fmt.Sprintf("Failed to persist chat message for %s: %v", userID, err))
	}
}

// emotionResponse maps a detected emotion to its canned reply and side
// metadata. The switch is exhaustive over the Emotion constants.
func emotionResponse(emotion Emotion) (string, map[string]any) {
	switch emotion {
	case EmotionAnger:
		return "I can hear that you're feeling angry. Would you like to explore some anger management techniques?",
			map[string]any{"suggested_group": string(GroupAM)}
	case EmotionAnxiety:
		return "It sounds like you're experiencing anxiety. Let's work on some calming techniques together.",
			map[string]any{"coping_strategies": copingStrategies["immediate"]}
	case EmotionDepression:
		return "I hear that you're feeling down. Remember that you're not alone. Would you like to talk to someone who can help?",
			map[string]any{"resources": []string{"crisis hotline", "therapy referrals"}}
	case EmotionPositive:
		return "I'm glad you're feeling positive! Would you like to explore ways to maintain this momentum?",
			map[string]any{"activities": []string{"gratitude journaling", "positive affirmations"}}
	default:
		return fallbackResponses[0], map[string]any{}
	}
}

func containsAny(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// stableHash gives deterministic variety for fallback replies. FNV-1a, not
// cryptographic.
func stableHash(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}

// parseScore extracts the first integer token from a free-text answer.
func parseScore(answer string) *int {
	for _, field := range strings.FieldsFunc(answer, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		if value, err := strconv.Atoi(field); err == nil {
			return &value
		}
	}
	return nil
}
