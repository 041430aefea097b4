package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mindhaven/internal/domain/dto"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/logger"
)

type MoodHandlers struct {
	Logger          *logger.Logger
	IdentityService Iservices.IIdentityService
	MoodService     Iservices.IMoodService
}

func NewMoodHandlers(logger *logger.Logger, identityService Iservices.IIdentityService, moodService Iservices.IMoodService) *MoodHandlers {
	return &MoodHandlers{Logger: logger, IdentityService: identityService, MoodService: moodService}
}

func (mh *MoodHandlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, mh.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request dto.MoodEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.MoodScore < 1 || request.MoodScore > 10 {
		http.Error(w, "mood_score must be between 1 and 10", http.StatusBadRequest)
		return
	}

	entry, err := mh.MoodService.CreateEntry(r.Context(), userID, request)
	if err != nil {
		mh.Logger.Error(fmt.Sprintf("Failed to create mood entry for %s: %v", userID, err))
		http.Error(w, "Error creating mood entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (mh *MoodHandlers) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := bearerUserID(r, mh.IdentityService)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := mh.MoodService.RecentEntries(r.Context(), userID, queryLimit(r, 30))
	if err != nil {
		mh.Logger.Error(fmt.Sprintf("Failed to fetch mood entries for %s: %v", userID, err))
		http.Error(w, "Error fetching mood entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
