package httpx

import (
	"log"
	"net/http"
	"time"
)

// pathParams are the route wildcards worth carrying into log lines.
var pathParams = []string{"book_id", "rating"}

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
	panicked      bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = code
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// routeOf returns the ServeMux pattern that served r, or "-" when nothing matched.
// ServeMux records the pattern and wildcards on the request it was handed, so
// they are visible here once the inner chain returns.
func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return "-"
	}
	return r.Pattern
}

// routeParams renders the matched wildcards as key=value pairs.
func routeParams(r *http.Request) string {
	out := ""
	for _, name := range pathParams {
		if v := r.PathValue(name); v != "" {
			out += " " + name + "=" + v
		}
	}
	return out
}

// AccessLogMiddleware writes one line per request with the matched book route.
// It must wrap RecoveryMiddleware so a panic is reported with its final status.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		log.Printf("access request_id=%s method=%s route=%q%s query=%q status=%d bytes=%d duration_ms=%d panic=%t",
			RequestIDFrom(r),
			r.Method,
			routeOf(r),
			routeParams(r),
			r.URL.RawQuery,
			rw.statusCode,
			rw.bytesWritten,
			time.Since(start).Milliseconds(),
			rw.panicked,
		)
	})
}
