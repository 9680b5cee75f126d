package admission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/outbox"
)

var errOverlap = errors.New("overlapping session")

// memoryStore serializes WithChefLock per chef with a mutex and rejects
// overlapping inserts the way the database exclusion constraint would.
type memoryStore struct {
	mu       sync.Mutex
	sessions []model.CommittedSession
	events   []outbox.Event
	nextID   int
}

func (m *memoryStore) WithChefLock(ctx context.Context, chefID string, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := memoryTx{store: m}
	if err := fn(&snapshot); err != nil {
		return err
	}
	m.apply(&snapshot)
	return nil
}

// apply makes a transaction's staged changes visible, like a commit.
func (m *memoryStore) apply(tx *memoryTx) {
	m.sessions = append(m.sessions, tx.inserted...)
	m.events = append(m.events, tx.appended...)
	for i := range m.sessions {
		if cancelled, ok := tx.cancelled[m.sessions[i].ID]; ok {
			m.sessions[i] = cancelled
		}
	}
}

type memoryTx struct {
	store     *memoryStore
	inserted  []model.CommittedSession
	appended  []outbox.Event
	cancelled map[string]model.CommittedSession
}

func (t *memoryTx) CommittedSessions(_ context.Context, chefID string, from, to time.Time) ([]model.CommittedSession, error) {
	var out []model.CommittedSession
	for _, s := range t.store.sessions {
		if s.ChefID == chefID && !s.Start.Before(from) && s.Start.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *memoryTx) InsertSession(_ context.Context, s *model.CommittedSession) error {
	for _, existing := range t.store.sessions {
		if existing.ChefID != s.ChefID || existing.Status == model.SessionStatusCancelled {
			continue
		}
		if s.TravelStart.Before(existing.End) && existing.TravelStart.Before(s.End) {
			return errOverlap
		}
	}
	t.store.nextID++
	s.ID = fmt.Sprintf("sess-%d", t.store.nextID)
	s.CreatedAt = time.Now().UTC()
	t.inserted = append(t.inserted, *s)
	return nil
}

func (t *memoryTx) CancelSession(_ context.Context, chefID, sessionID, _ string) (model.CommittedSession, error) {
	for _, s := range t.store.sessions {
		if s.ChefID == chefID && s.ID == sessionID && s.Status == model.SessionStatusCommitted {
			now := time.Now().UTC()
			s.Status = model.SessionStatusCancelled
			s.CancelledAt = &now
			if t.cancelled == nil {
				t.cancelled = map[string]model.CommittedSession{}
			}
			t.cancelled[sessionID] = s
			return s, nil
		}
	}
	return model.CommittedSession{}, model.ErrChefNotFound
}

func (t *memoryTx) AppendEvent(_ context.Context, evt outbox.Event) error {
	t.appended = append(t.appended, evt)
	return nil
}

type fixedSources struct {
	chef     model.Chef
	windows  []model.WeeklyWindow
	blocked  []model.BlockedInterval
	settings model.TimeSettings
	travel   time.Duration
}

func (f *fixedSources) ChefProfile(_ context.Context, id string) (model.Chef, error) {
	if id != f.chef.ID {
		return model.Chef{}, model.ErrChefNotFound
	}
	return f.chef, nil
}

func (f *fixedSources) WeeklyWindows(_ context.Context, _ string) ([]model.WeeklyWindow, error) {
	return f.windows, nil
}

func (f *fixedSources) BlockedIntervals(_ context.Context, _ string, _, _ time.Time) ([]model.BlockedInterval, error) {
	return f.blocked, nil
}

func (f *fixedSources) TimeSettings(_ context.Context, _ string) (model.TimeSettings, error) {
	return f.settings, nil
}

func (f *fixedSources) TravelDuration(_ context.Context, _, _ model.GeoPoint) (time.Duration, error) {
	return f.travel, nil
}

func testControl(t *testing.T, store Store, src *fixedSources) *Control {
	t.Helper()
	ctl := New(store, src, src, src, src, src, func(err error) bool {
		return errors.Is(err, errOverlap)
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	// Fixed clock: Tuesday 2026-09-01 09:00 UTC.
	ctl.now = func() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) }
	return ctl
}

func defaultSources() *fixedSources {
	settings := model.DefaultTimeSettings("chef-1")
	return &fixedSources{
		chef: model.Chef{ID: "chef-1", Name: "Ayesha", Status: model.ChefStatusApproved, Location: model.GeoPoint{Lat: 23.78, Lng: 90.41}},
		windows: []model.WeeklyWindow{
			// Monday 10:00-20:00.
			{ChefID: "chef-1", Weekday: 1, StartMinute: 10 * 60, EndMinute: 20 * 60},
		},
		settings: settings,
		travel:   30 * time.Minute,
	}
}

func TestCommitHappyPath(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	venue := model.GeoPoint{Lat: 23.79, Lng: 90.42}
	attempt, err := ctl.Commit(context.Background(), Request{
		ChefID: "chef-1", CustomerID: "cust-1",
		Start: start, End: start.Add(2 * time.Hour),
		Venue: &venue,
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if attempt.State != StateCommitted {
		t.Fatalf("state = %s, want %s", attempt.State, StateCommitted)
	}
	// 30 minutes travel plus a 20 percent buffer means travel starts 36
	// minutes before cooking, which starts 30 minutes before serving.
	wantTravelStart := start.Add(-30 * time.Minute).Add(-36 * time.Minute)
	if !attempt.Session.TravelStart.Equal(wantTravelStart) {
		t.Fatalf("travel start = %v, want %v", attempt.Session.TravelStart, wantTravelStart)
	}
	if len(store.events) != 1 || store.events[0].EventType != "booking.session.committed.v1" {
		t.Fatalf("events = %+v, want one committed event", store.events)
	}
}

func TestCommitInCallerTransaction(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	tx := &memoryTx{store: store}
	attempt, err := ctl.CommitIn(context.Background(), tx, Request{
		ChefID: "chef-1", CustomerID: "cust-1",
		Start: start, End: start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("commit in tx: %v", err)
	}
	if attempt.State != StateCommitted || attempt.Session.ID == "" {
		t.Fatalf("attempt = %+v, want committed with session id", attempt)
	}

	// The session and its event stay staged in the caller's transaction, so
	// anything the caller finalizes alongside them lands atomically or not
	// at all.
	if len(store.sessions) != 0 || len(store.events) != 0 {
		t.Fatalf("store mutated before caller committed: %d sessions, %d events", len(store.sessions), len(store.events))
	}
	store.apply(tx)
	if len(store.sessions) != 1 || len(store.events) != 1 {
		t.Fatalf("after commit: %d sessions, %d events, want 1 each", len(store.sessions), len(store.events))
	}

	// A later attempt on the same window loses against the committed state.
	if _, err := ctl.Commit(context.Background(), Request{
		ChefID: "chef-1", CustomerID: "cust-2",
		Start: start, End: start.Add(2 * time.Hour),
	}); !errors.Is(err, model.ErrSlotNoLongerAvailable) {
		t.Fatalf("err = %v, want ErrSlotNoLongerAvailable", err)
	}
}

func TestCommitRejectsOverlapAtValidation(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	req := Request{ChefID: "chef-1", CustomerID: "cust-1", Start: start, End: start.Add(2 * time.Hour)}
	if _, err := ctl.Commit(context.Background(), req); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	req.CustomerID = "cust-2"
	attempt, err := ctl.Commit(context.Background(), req)
	if !errors.Is(err, model.ErrSlotNoLongerAvailable) {
		t.Fatalf("err = %v, want ErrSlotNoLongerAvailable", err)
	}
	if attempt.State != StateRejected {
		t.Fatalf("state = %s, want %s", attempt.State, StateRejected)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(store.sessions))
	}
}

func TestCommitConcurrentSameSlot(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(customer string) {
			defer wg.Done()
			_, err := ctl.Commit(context.Background(), Request{
				ChefID: "chef-1", CustomerID: customer,
				Start: start, End: start.Add(2 * time.Hour),
			})
			results <- err
		}(fmt.Sprintf("cust-%d", i))
	}
	wg.Wait()
	close(results)

	var committed, lost int
	for err := range results {
		switch {
		case err == nil:
			committed++
		case errors.Is(err, model.ErrSlotNoLongerAvailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if committed != 1 || lost != 1 {
		t.Fatalf("committed=%d lost=%d, want exactly one winner", committed, lost)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(store.sessions))
	}
}

func TestCommitPolicyChecks(t *testing.T) {
	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	farAway := model.GeoPoint{Lat: 24.90, Lng: 91.87}

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "below minimum notice",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)},
			want: model.ErrPolicyViolation,
		},
		{
			name: "beyond booking horizon",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: start.AddDate(0, 0, 90), End: start.AddDate(0, 0, 90).Add(2 * time.Hour)},
			want: model.ErrPolicyViolation,
		},
		{
			name: "outside service radius",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: start, End: start.Add(2 * time.Hour), Venue: &farAway},
			want: model.ErrPolicyViolation,
		},
		{
			name: "end before start",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: start, End: start.Add(-time.Hour)},
			want: model.ErrInvalidDateRange,
		},
		{
			name: "crosses midnight",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 8, 1, 0, 0, 0, time.UTC)},
			want: model.ErrInvalidDateRange,
		},
		{
			name: "unknown chef",
			req:  Request{ChefID: "chef-404", CustomerID: "c", Start: start, End: start.Add(2 * time.Hour)},
			want: model.ErrChefNotFound,
		},
		{
			name: "outside weekly windows",
			req:  Request{ChefID: "chef-1", CustomerID: "c", Start: start.AddDate(0, 0, 1), End: start.AddDate(0, 0, 1).Add(2 * time.Hour)},
			want: model.ErrSlotNoLongerAvailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := testControl(t, &memoryStore{}, defaultSources())
			attempt, err := ctl.Commit(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if attempt.State == StateCommitted {
				t.Fatalf("attempt unexpectedly committed")
			}
		})
	}
}

func TestCommitSaturatedDay(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	src.settings.MaxSessionsPerDay = 1
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	if _, err := ctl.Commit(context.Background(), Request{ChefID: "chef-1", CustomerID: "a", Start: start, End: start.Add(time.Hour)}); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	later := time.Date(2026, 9, 7, 16, 0, 0, 0, time.UTC)
	_, err := ctl.Commit(context.Background(), Request{ChefID: "chef-1", CustomerID: "b", Start: later, End: later.Add(time.Hour)})
	if !errors.Is(err, model.ErrPolicyViolation) {
		t.Fatalf("err = %v, want ErrPolicyViolation", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	store := &memoryStore{}
	src := defaultSources()
	ctl := testControl(t, store, src)

	start := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	req := Request{ChefID: "chef-1", CustomerID: "a", Start: start, End: start.Add(2 * time.Hour)}
	attempt, err := ctl.Commit(context.Background(), req)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	cancelled, err := ctl.Cancel(context.Background(), "chef-1", attempt.Session.ID, "customer request")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.SessionStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("cancelled = %+v, want cancelled status with timestamp", cancelled)
	}
	if got := store.events[len(store.events)-1].EventType; got != "booking.session.cancelled.v1" {
		t.Fatalf("last event = %s, want cancelled event", got)
	}

	// The slot is bookable again for another customer.
	req.CustomerID = "b"
	if _, err := ctl.Commit(context.Background(), req); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}
