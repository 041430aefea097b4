package routes

import (
	"encoding/json"
	"net/http"

	"mindhaven/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux               *mux.Router
	ChatHandlers      *handlers.ChatHandlers
	MoodHandlers      *handlers.MoodHandlers
	WebSocketHandlers *handlers.WebSocketHandlers
}

func NewRoutes(mux *mux.Router, chatHandlers *handlers.ChatHandlers, moodHandlers *handlers.MoodHandlers, webSocketHandlers *handlers.WebSocketHandlers) *Routes {
	return &Routes{mux, chatHandlers, moodHandlers, webSocketHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/api/chat/message", r.ChatHandlers.SendMessage).Methods(http.MethodPost)
	r.Mux.HandleFunc("/api/chat/checkin/start", r.ChatHandlers.StartCheckIn).Methods(http.MethodPost)
	r.Mux.HandleFunc("/api/chat/messages", r.ChatHandlers.GetMessages).Methods(http.MethodGet)
	r.Mux.HandleFunc("/api/chat/checkins", r.ChatHandlers.GetCheckIns).Methods(http.MethodGet)

	r.Mux.HandleFunc("/api/mood/entries", r.MoodHandlers.CreateEntry).Methods(http.MethodPost)
	r.Mux.HandleFunc("/api/mood/entries", r.MoodHandlers.GetEntries).Methods(http.MethodGet)

	r.Mux.HandleFunc("/ws/health", r.WebSocketHandlers.Health).Methods(http.MethodGet)
	r.Mux.HandleFunc("/ws/{token}", r.WebSocketHandlers.Serve)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
