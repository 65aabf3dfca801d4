package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"countdown/internal/codec"
	"countdown/internal/domain"
	"countdown/internal/service"
)

// TimerNotFoundMessage is the body returned for an unknown timer ID
const TimerNotFoundMessage = "Timer does not exist"

// TimerHandler handles quote and timer API requests
type TimerHandler struct {
	svc       *service.TimerService
	logger    log.FieldLogger
	codecs    *codec.Negotiator
	quote     domain.Quote
	storeName string
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(svc *service.TimerService, logger log.FieldLogger) *TimerHandler {
	return &TimerHandler{
		svc:    svc,
		logger: logger,
		codecs: codec.Default(),
		quote:  domain.NewQuote(""),
	}
}

// SetQuote overrides the quote text; empty restores the default
func (h *TimerHandler) SetQuote(text string) {
	h.quote = domain.NewQuote(text)
}

// SetStoreName sets the registry backend name reported by Health
func (h *TimerHandler) SetStoreName(name string) {
	h.storeName = name
}

// ErrorResponse is the body of 4xx/5xx responses other than not-found
type ErrorResponse struct {
	Error   string `json:"error" yaml:"error" cbor:"error"`
	Details string `json:"details,omitempty" yaml:"details,omitempty" cbor:"details,omitempty"`
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status string `json:"status" yaml:"status" cbor:"status"`
	Timers int    `json:"timers" yaml:"timers" cbor:"timers"`
	Store  string `json:"store,omitempty" yaml:"store,omitempty" cbor:"store,omitempty"`
}

// GetQuote returns the motivational quote
func (h *TimerHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, h.quote, http.StatusOK)
}

// CreateTimer starts a timer of duration_in_min minutes
func (h *TimerHandler) CreateTimer(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("duration_in_min")
	minutes, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		h.writeError(w, r, "Invalid duration", "duration_in_min must be a non-negative integer number of minutes", http.StatusBadRequest)
		return
	}

	timer, err := h.svc.CreateTimer(r.Context(), minutes)
	if err != nil {
		if errors.Is(err, domain.ErrDurationTooLarge) {
			h.writeError(w, r, "Invalid duration", err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithError(err).Error("Failed to create timer")
		h.writeError(w, r, "Failed to create timer", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeResponse(w, r, timer, http.StatusOK)
}

// GetStatus returns the time remaining on a timer
func (h *TimerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, "Invalid timer ID", err.Error(), http.StatusBadRequest)
		return
	}

	status, err := h.svc.TimerStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTimerNotFound) {
			h.writeResponse(w, r, TimerNotFoundMessage, http.StatusNotFound)
			return
		}
		h.logger.WithError(err).WithField("timer_id", id).Error("Failed to get timer status")
		h.writeError(w, r, "Failed to get timer status", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeResponse(w, r, status, http.StatusOK)
}

// ListTimers returns every timer in the registry
func (h *TimerHandler) ListTimers(w http.ResponseWriter, r *http.Request) {
	timers, err := h.svc.ListTimers(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list timers")
		h.writeError(w, r, "Failed to list timers", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeResponse(w, r, timers, http.StatusOK)
}

// Health reports liveness and the registry size
func (h *TimerHandler) Health(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountTimers(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Health check failed")
		h.writeError(w, r, "Store unavailable", err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.writeResponse(w, r, HealthResponse{
		Status: "ok",
		Timers: n,
		Store:  h.storeName,
	}, http.StatusOK)
}

// Helper methods

func (h *TimerHandler) writeResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	enc := h.codecs.Negotiate(r.Header.Get("Accept"))
	w.Header().Set("Content-Type", enc.ContentType())
	w.WriteHeader(statusCode)
	if err := enc.Encode(w, data); err != nil {
		h.logger.WithError(err).Errorf("Failed to encode %s response", enc.Format())
	}
}

func (h *TimerHandler) writeError(w http.ResponseWriter, r *http.Request, error, details string, statusCode int) {
	h.writeResponse(w, r, ErrorResponse{
		Error:   error,
		Details: details,
	}, statusCode)
}
