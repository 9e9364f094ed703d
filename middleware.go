package main

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// withCORS allows the configured origins. Preflight requests are
// answered here and never reach the router.
func (s *AppState) withCORS(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.Config.AllowedOrigins))
	allowAll := false
	for _, origin := range s.Config.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusWriter records the response status and stamps X-Process-Time
// on the way out.
type statusWriter struct {
	http.ResponseWriter
	status      int
	start       time.Time
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	w.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", elapsedMS(w.start)))
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (s *AppState) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK, start: time.Now()}
		next.ServeHTTP(sw, r)

		log.Printf("%s %s %s | status=%d | %.2fms",
			requestID, r.Method, r.URL.Path, sw.status, elapsedMS(sw.start))
	})
}

// withRecovery is the outermost boundary: any panic below becomes an
// internal error response instead of tearing down the connection.
func (s *AppState) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				detail := "An error occurred"
				if s.Config.Development() {
					detail = fmt.Sprint(rec)
				}
				s.sendError(w, detail, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
