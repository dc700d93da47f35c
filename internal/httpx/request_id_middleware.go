package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	requestIDHeader     = "X-Request-Id"
	correlationIDHeader = "X-Correlation-Id"
	maxRequestIDLength  = 128
)

// incomingRequestID picks the caller's id from X-Request-Id, then X-Correlation-Id.
// Ids that are too long or contain characters outside [A-Za-z0-9._-] are dropped
// because they end up verbatim in log lines.
func incomingRequestID(h http.Header) string {
	for _, name := range []string{requestIDHeader, correlationIDHeader} {
		if id := h.Get(name); validRequestID(id) {
			return id
		}
	}
	return ""
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// RequestIDMiddleware tags every book request with an id, reusing the caller's
// when it is usable and minting a UUID otherwise. The id is echoed in X-Request-Id.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := incomingRequestID(r.Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), requestID)))
	})
}
