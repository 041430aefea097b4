package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	Iservices "mindhaven/internal/domain/interfaces/services"
)

// bearerUserID resolves the Authorization header into a user identity.
func bearerUserID(r *http.Request, identity Iservices.IIdentityService) (string, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	return identity.Verify(token)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
