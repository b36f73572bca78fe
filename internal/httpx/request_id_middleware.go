package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with a correlation id and echoes
// it on the response. An inbound id is kept only when it is a well-formed
// UUID; anything else is replaced rather than reflected back.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), requestID)))
	})
}
