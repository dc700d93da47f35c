package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware converts a handler panic into a 500 envelope. When the
// handler already started the response only the log line is written.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			log.Printf("panic request_id=%s route=%q%s error=%v stack=%s",
				RequestIDFrom(r), routeOf(r), routeParams(r), recovered, debug.Stack())

			rw, tracked := w.(*responseWriter)
			if tracked {
				rw.panicked = true
				if rw.headerWritten {
					return
				}
			}
			JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
