package http

import (
	"encoding/json"
	"net/http"
)

// One envelope shape per resource: {"book": ...}, {"books": [...]},
// {"review": ...}, {"reviews": [...]}, {"token": ...}; failures and
// confirmations carry a human-readable {"message": ...}.

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

type validationResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func ValidationFailed(w http.ResponseWriter, details []FieldError) {
	JSON(w, http.StatusBadRequest, validationResponse{
		Message: "Please fill in all fields.",
		Errors:  details,
	})
}
