package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chefbook-app/chefbook/services/chef-service/internal/model"
	"github.com/chefbook-app/chefbook/services/chef-service/internal/outbox"
)

// fakeTx satisfies the transaction plumbing; the fakes below ignore it.
type fakeTx struct {
	pgx.Tx
	committed bool
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeStore struct {
	chefs   map[string]model.ChefAccount
	created []model.ChefAccount
	tx      *fakeTx
}

func (s *fakeStore) Begin(context.Context) (pgx.Tx, error) {
	s.tx = &fakeTx{}
	return s.tx, nil
}

func (s *fakeStore) CreateChef(_ context.Context, c model.ChefAccount) (string, error) {
	c.ID = "chef-new"
	c.Status = model.StatusPending
	s.created = append(s.created, c)
	return c.ID, nil
}

func (s *fakeStore) GetChef(_ context.Context, id string) (model.ChefAccount, error) {
	c, ok := s.chefs[id]
	if !ok {
		return model.ChefAccount{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) ListChefs(_ context.Context, status string, _ int) ([]model.ChefAccount, error) {
	var out []model.ChefAccount
	for _, c := range s.chefs {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) SetStatus(_ context.Context, _ pgx.Tx, id, status string) (model.ChefAccount, error) {
	c, ok := s.chefs[id]
	if !ok {
		return model.ChefAccount{}, pgx.ErrNoRows
	}
	c.Status = status
	s.chefs[id] = c
	return c, nil
}

type fakeOutbox struct {
	events []outbox.Event
}

func (o *fakeOutbox) Insert(_ context.Context, _ pgx.Tx, evt outbox.Event) error {
	o.events = append(o.events, evt)
	return nil
}

func testHandler() (*Handler, *fakeStore, *fakeOutbox) {
	store := &fakeStore{chefs: map[string]model.ChefAccount{
		"chef-1": {
			ID: "chef-1", Name: "Ayesha", Email: "ayesha@example.com",
			Status: model.StatusPending, Lat: 23.78, Lng: 90.41,
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	ob := &fakeOutbox{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, ob, logger), store, ob
}

func TestRegisterValidation(t *testing.T) {
	h, store, _ := testHandler()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"email":"a@b.com"}`, http.StatusBadRequest},
		{"missing email", `{"name":"A"}`, http.StatusBadRequest},
		{"bad latitude", `{"name":"A","email":"a@b.com","lat":95,"lng":0}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
		{"ok", `{"name":"A","email":"a@b.com","lat":23.7,"lng":90.4}`, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chefs/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
	if len(store.created) != 1 || store.created[0].Status != model.StatusPending {
		t.Fatalf("created = %+v, want one pending chef", store.created)
	}
}

func TestApproveEmitsEvent(t *testing.T) {
	h, store, ob := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chefs/approve", strings.NewReader(`{"id":"chef-1"}`))
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := store.chefs["chef-1"].Status; got != model.StatusApproved {
		t.Fatalf("status = %s, want %s", got, model.StatusApproved)
	}
	if len(ob.events) != 1 || ob.events[0].EventType != "chef.approved.v1" {
		t.Fatalf("events = %+v, want one chef.approved.v1", ob.events)
	}
	var payload struct {
		ChefID string  `json:"chef_id"`
		Name   string  `json:"name"`
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
	}
	if err := json.Unmarshal(ob.events[0].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.ChefID != "chef-1" || payload.Name != "Ayesha" || payload.Lat != 23.78 {
		t.Fatalf("payload = %+v", payload)
	}
	if store.tx == nil || !store.tx.committed {
		t.Fatal("status change and event must commit in one transaction")
	}
}

func TestDisableEmitsEvent(t *testing.T) {
	h, _, ob := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chefs/disable", strings.NewReader(`{"id":"chef-1"}`))
	rec := httptest.NewRecorder()
	h.Disable(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(ob.events) != 1 || ob.events[0].EventType != "chef.disabled.v1" {
		t.Fatalf("events = %+v, want one chef.disabled.v1", ob.events)
	}
}

func TestApproveUnknownChef(t *testing.T) {
	h, _, ob := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chefs/approve", strings.NewReader(`{"id":"chef-404"}`))
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(ob.events) != 0 {
		t.Fatalf("events = %+v, want none", ob.events)
	}
}

func TestGetChef(t *testing.T) {
	h, _, _ := testHandler()

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chefs/get?id=chef-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var item struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.ID != "chef-1" || item.Status != model.StatusPending {
		t.Fatalf("item = %+v", item)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chefs/get?id=chef-404", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
