package handler

import "net/http"

// NewRouter registers the API routes. events may be nil to disable /events.
func NewRouter(h *TimerHandler, events http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /quote", h.GetQuote)
	mux.HandleFunc("GET /timer/{duration_in_min}", h.CreateTimer)
	mux.HandleFunc("GET /status/{id}", h.GetStatus)

	mux.HandleFunc("GET /timers", h.ListTimers)
	mux.HandleFunc("GET /healthz", h.Health)

	if events != nil {
		mux.Handle("GET /events", events)
	}

	return mux
}
