package repocontants

const (
	MESSAGES_COLLECTION      = "messages"
	CHAT_CONTEXTS_COLLECTION = "chat_contexts"
	CHECKINS_COLLECTION      = "checkins"
	MOOD_ENTRIES_COLLECTION  = "mood_entries"
)
