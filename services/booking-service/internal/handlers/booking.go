package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/admission"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/cache"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/storage"
)

type BookingHandler struct {
	control  *admission.Control
	sessions *storage.SessionRepository
	cache    *cache.AvailabilityCache
	logger   *slog.Logger
}

func NewBookingHandler(control *admission.Control, sessions *storage.SessionRepository, slotCache *cache.AvailabilityCache, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		control:  control,
		sessions: sessions,
		cache:    slotCache,
		logger:   logger,
	}
}

type createBookingRequest struct {
	ChefID     string   `json:"chef_id"`
	CustomerID string   `json:"customer_id"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	VenueLat   *float64 `json:"venue_lat"`
	VenueLng   *float64 `json:"venue_lng"`
}

type createBookingResponse struct {
	SessionID   string `json:"session_id"`
	ChefID      string `json:"chef_id"`
	TravelStart string `json:"travel_start"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
}

type cancelBookingRequest struct {
	ChefID    string `json:"chef_id"`
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

type cancelBookingResponse struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelled_at"`
}

type listSessionItem struct {
	SessionID   string `json:"session_id"`
	CustomerID  string `json:"customer_id"`
	Date        string `json:"date"`
	TravelStart string `json:"travel_start"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelled_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ChefID = strings.TrimSpace(req.ChefID)
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	if req.ChefID == "" || req.CustomerID == "" {
		http.Error(w, "chef_id and customer_id required", http.StatusBadRequest)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		http.Error(w, "invalid end_time", http.StatusBadRequest)
		return
	}
	if !endTime.After(startTime) {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}

	var venue *model.GeoPoint
	if req.VenueLat != nil || req.VenueLng != nil {
		if req.VenueLat == nil || req.VenueLng == nil {
			http.Error(w, "venue_lat and venue_lng must be set together", http.StatusBadRequest)
			return
		}
		venue = &model.GeoPoint{Lat: *req.VenueLat, Lng: *req.VenueLng}
	}

	ctx := r.Context()
	commitReq := admission.Request{
		ChefID:     req.ChefID,
		CustomerID: req.CustomerID,
		Start:      startTime.UTC(),
		End:        endTime.UTC(),
		Venue:      venue,
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey == "" {
		attempt, err := h.control.Commit(ctx, commitReq)
		if err != nil {
			h.writeCommitError(w, err)
			return
		}
		h.cache.Invalidate(ctx, req.ChefID)
		writeJSON(w, http.StatusCreated, commitResponse(attempt.Session))
		return
	}

	// The idempotency row is held FOR UPDATE across the admission pass, so a
	// concurrent replay of the same key waits here and then sees the stored
	// response. The session insert and the key finalize ride this one
	// transaction: either both land or neither does.
	tx, err := h.sessions.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, exists, err := h.sessions.LockIdempotencyKey(ctx, tx, req.ChefID, idempotencyKey)
	if err != nil {
		http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
		return
	}
	if exists && rec.StatusCode > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rec.StatusCode)
		_, _ = w.Write(rec.ResponsePayload)
		return
	}

	var attempt admission.Attempt
	commitErr := h.sessions.WithChefLockTx(ctx, tx, req.ChefID, func(atx admission.Tx) error {
		var err error
		attempt, err = h.control.CommitIn(ctx, atx, commitReq)
		return err
	})
	if commitErr != nil {
		status, msg := commitErrorStatus(commitErr)
		if status >= 500 {
			// Dependency failures are retryable with the same key.
			http.Error(w, msg, status)
			return
		}
		body, _ := json.Marshal(map[string]string{"error": msg})
		if err := h.sessions.FinalizeIdempotency(ctx, tx, req.ChefID, idempotencyKey, "", status, body); err != nil {
			h.logger.Error("failed to finalize idempotency", "err", err)
		} else if err := tx.Commit(ctx); err != nil {
			h.logger.Error("failed to record idempotent rejection", "err", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	respBody, err := json.Marshal(commitResponse(attempt.Session))
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if err := h.sessions.FinalizeIdempotency(ctx, tx, req.ChefID, idempotencyKey, attempt.Session.ID, http.StatusCreated, respBody); err != nil {
		http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.logger.Info("booking committed", "chef_id", req.ChefID, "session_id", attempt.Session.ID)

	h.cache.Invalidate(ctx, req.ChefID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ChefID = strings.TrimSpace(req.ChefID)
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.ChefID == "" || req.SessionID == "" {
		http.Error(w, "chef_id and session_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	cancelled, err := h.control.Cancel(ctx, req.ChefID, req.SessionID, req.Reason)
	if err != nil {
		if storage.IsNotFound(err) {
			// Cancelling twice is a no-op, not an error.
			existing, getErr := h.sessions.GetSession(ctx, req.ChefID, req.SessionID)
			if getErr == nil && existing.Status == model.SessionStatusCancelled && existing.CancelledAt != nil {
				writeJSON(w, http.StatusOK, cancelBookingResponse{
					SessionID:   existing.ID,
					Status:      existing.Status,
					CancelledAt: existing.CancelledAt.UTC().Format(time.RFC3339),
				})
				return
			}
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("cancel failed", "err", err, "session_id", req.SessionID)
		http.Error(w, "failed to cancel session", http.StatusInternalServerError)
		return
	}

	h.cache.Invalidate(ctx, req.ChefID)
	resp := cancelBookingResponse{
		SessionID: cancelled.ID,
		Status:    cancelled.Status,
	}
	if cancelled.CancelledAt != nil {
		resp.CancelledAt = cancelled.CancelledAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	chefID := strings.TrimSpace(r.Header.Get("X-Chef-Id"))
	if chefID == "" {
		chefID = strings.TrimSpace(r.URL.Query().Get("chef_id"))
	}
	if chefID == "" {
		http.Error(w, "chef_id required", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	sessions, err := h.sessions.ListByChef(r.Context(), chefID, limit)
	if err != nil {
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	items := make([]listSessionItem, 0, len(sessions))
	for _, s := range sessions {
		item := listSessionItem{
			SessionID:   s.ID,
			CustomerID:  s.CustomerID,
			Date:        s.Date.UTC().Format("2006-01-02"),
			TravelStart: s.TravelStart.UTC().Format(time.RFC3339),
			StartTime:   s.Start.UTC().Format(time.RFC3339),
			EndTime:     s.End.UTC().Format(time.RFC3339),
			Status:      s.Status,
			CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if s.CancelledAt != nil {
			item.CancelledAt = s.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BookingHandler) writeCommitError(w http.ResponseWriter, err error) {
	status, msg := commitErrorStatus(err)
	if status >= 500 {
		h.logger.Error("booking commit failed", "err", err)
	}
	http.Error(w, msg, status)
}

func commitErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrChefNotFound):
		return http.StatusNotFound, "chef not found"
	case errors.Is(err, model.ErrInvalidDateRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, model.ErrSlotNoLongerAvailable):
		return http.StatusConflict, "time slot no longer available"
	default:
		return http.StatusInternalServerError, "failed to create booking"
	}
}

func commitResponse(s model.CommittedSession) createBookingResponse {
	return createBookingResponse{
		SessionID:   s.ID,
		ChefID:      s.ChefID,
		TravelStart: s.TravelStart.UTC().Format(time.RFC3339),
		StartTime:   s.Start.UTC().Format(time.RFC3339),
		EndTime:     s.End.UTC().Format(time.RFC3339),
		Status:      s.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
