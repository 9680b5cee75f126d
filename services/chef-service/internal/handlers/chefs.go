package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chefbook-app/chefbook/services/chef-service/internal/model"
	"github.com/chefbook-app/chefbook/services/chef-service/internal/outbox"
	"github.com/chefbook-app/chefbook/services/chef-service/internal/storage"
)

// ChefStore is the registry persistence surface the handlers need.
type ChefStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	CreateChef(ctx context.Context, c model.ChefAccount) (string, error)
	GetChef(ctx context.Context, id string) (model.ChefAccount, error)
	ListChefs(ctx context.Context, status string, limit int) ([]model.ChefAccount, error)
	SetStatus(ctx context.Context, tx pgx.Tx, id, status string) (model.ChefAccount, error)
}

// OutboxWriter appends an event inside the caller's transaction.
type OutboxWriter interface {
	Insert(ctx context.Context, tx pgx.Tx, evt outbox.Event) error
}

type Handler struct {
	repo       ChefStore
	outboxRepo OutboxWriter
	logger     *slog.Logger
}

func New(repo ChefStore, outboxRepo OutboxWriter, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, outboxRepo: outboxRepo, logger: logger}
}

type chefItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Bio       string  `json:"bio,omitempty"`
	Status    string  `json:"status"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	CreatedAt string  `json:"created_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Bio   string  `json:"bio"`
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		http.Error(w, "name and email required", http.StatusBadRequest)
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return
	}

	id, err := h.repo.CreateChef(r.Context(), model.ChefAccount{
		Name:  req.Name,
		Email: req.Email,
		Bio:   strings.TrimSpace(req.Bio),
		Lat:   req.Lat,
		Lng:   req.Lng,
	})
	if err != nil {
		http.Error(w, "failed to register chef", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id, "status": model.StatusPending})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	c, err := h.repo.GetChef(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "chef not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load chef", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(toItem(c))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	chefs, err := h.repo.ListChefs(r.Context(), status, limit)
	if err != nil {
		http.Error(w, "failed to list chefs", http.StatusInternalServerError)
		return
	}
	items := make([]chefItem, 0, len(chefs))
	for _, c := range chefs {
		items = append(items, toItem(c))
	}
	_ = json.NewEncoder(w).Encode(items)
}

// Approve flips the chef to approved and emits chef.approved.v1 in the
// same transaction. Downstream booking picks the event up and seeds its
// own chef projection with default scheduling policy.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusApproved, "chef.approved.v1")
}

func (h *Handler) Disable(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.StatusDisabled, "chef.disabled.v1")
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, status, eventType string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	c, err := h.repo.SetStatus(ctx, tx, req.ID, status)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "chef not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update chef", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"chef_id": c.ID,
		"name":    c.Name,
		"lat":     c.Lat,
		"lng":     c.Lng,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "chef",
		AggregateID:   c.ID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	h.logger.Info("chef status changed", "chef_id", c.ID, "status", status)
	_ = json.NewEncoder(w).Encode(toItem(c))
}

func toItem(c model.ChefAccount) chefItem {
	return chefItem{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Bio:       c.Bio,
		Status:    c.Status,
		Lat:       c.Lat,
		Lng:       c.Lng,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
