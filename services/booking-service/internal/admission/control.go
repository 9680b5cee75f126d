// Package admission re-validates a requested booking window against the
// authoritative committed-session set inside a single atomic unit per chef.
// Availability queries are advisory; this is the only place a session is
// allowed to come into existence, which closes the read-then-write race
// between concurrent customers viewing the same free slot.
package admission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/distance"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/outbox"
)

// State of a booking attempt. Every attempt starts REQUESTED and ends
// COMMITTED or REJECTED; VALIDATED is the intermediate state after policy
// and overlap checks pass but before the session is durably recorded.
type State string

const (
	StateRequested State = "requested"
	StateValidated State = "validated"
	StateCommitted State = "committed"
	StateRejected  State = "rejected"
)

// Attempt is the outcome of one admission pass.
type Attempt struct {
	State   State
	Session model.CommittedSession
	Reason  string
}

// Request describes the booking a customer wants committed.
type Request struct {
	ChefID     string
	CustomerID string
	Start      time.Time
	End        time.Time
	Venue      *model.GeoPoint
}

// Store is the transactional mutation path. WithChefLock must serialize
// concurrent calls for the same chef and guarantee that session reads
// inside fn observe every previously committed session.
type Store interface {
	WithChefLock(ctx context.Context, chefID string, fn func(tx Tx) error) error
}

// Tx is the per-attempt view inside the chef lock.
type Tx interface {
	CommittedSessions(ctx context.Context, chefID string, from, to time.Time) ([]model.CommittedSession, error)
	InsertSession(ctx context.Context, s *model.CommittedSession) error
	CancelSession(ctx context.Context, chefID, sessionID, reason string) (model.CommittedSession, error)
	AppendEvent(ctx context.Context, evt outbox.Event) error
}

// ConflictChecker reports whether an insert error was a storage-level
// overlap rejection (the database exclusion constraint fired).
type ConflictChecker func(error) bool

type Control struct {
	store    Store
	dir      availability.ChefDirectory
	schedule availability.ScheduleSource
	blocked  availability.BlockedDateSource
	settings availability.TimeSettingsSource
	travel   availability.DistanceProvider
	conflict ConflictChecker
	logger   *slog.Logger
	now      func() time.Time
}

func New(store Store, dir availability.ChefDirectory, schedule availability.ScheduleSource, blocked availability.BlockedDateSource, settings availability.TimeSettingsSource, travel availability.DistanceProvider, conflict ConflictChecker, logger *slog.Logger) *Control {
	if conflict == nil {
		conflict = func(error) bool { return false }
	}
	return &Control{
		store:    store,
		dir:      dir,
		schedule: schedule,
		blocked:  blocked,
		settings: settings,
		travel:   travel,
		conflict: conflict,
		logger:   logger,
		now:      time.Now,
	}
}

// Commit runs the full admission pass in its own chef-locked transaction.
// On success the returned attempt is COMMITTED and the session, including
// its derived travel start, is durably recorded together with its outbox
// event. Any failure leaves no partial state; a rejected attempt carries
// the reason and a typed error.
func (c *Control) Commit(ctx context.Context, req Request) (Attempt, error) {
	attempt := Attempt{State: StateRequested}
	err := c.store.WithChefLock(ctx, req.ChefID, func(tx Tx) error {
		var err error
		attempt, err = c.CommitIn(ctx, tx, req)
		return err
	})
	if err != nil {
		return attempt, err
	}
	c.logger.Info("booking committed",
		"chef_id", attempt.Session.ChefID,
		"session_id", attempt.Session.ID,
		"start", attempt.Session.Start.Format(time.RFC3339),
		"travel_start", attempt.Session.TravelStart.Format(time.RFC3339),
	)
	return attempt, nil
}

// CommitIn runs the admission pass against a transaction the caller already
// holds the chef lock on. The session insert and outbox event ride that
// transaction, so callers can commit further work (an idempotency record)
// atomically with the booking. The caller owns the commit or rollback.
func (c *Control) CommitIn(ctx context.Context, tx Tx, req Request) (Attempt, error) {
	attempt := Attempt{State: StateRequested}

	if !req.End.After(req.Start) {
		return c.reject(attempt, "end not after start", model.ErrInvalidDateRange)
	}
	date := req.Start.UTC().Truncate(24 * time.Hour)
	if !sameDay(req.Start, req.End.Add(-time.Nanosecond)) {
		return c.reject(attempt, "session crosses midnight", model.ErrInvalidDateRange)
	}

	chef, err := c.dir.ChefProfile(ctx, req.ChefID)
	if err != nil {
		return attempt, err
	}
	settings, err := c.settings.TimeSettings(ctx, req.ChefID)
	if err != nil {
		return attempt, fmt.Errorf("load time settings: %w", err)
	}

	now := c.now().UTC()
	if notice := time.Duration(settings.MinNoticeHours) * time.Hour; req.Start.Before(now.Add(notice)) {
		return c.reject(attempt, "below minimum booking notice", fmt.Errorf("%w: bookings need %dh notice", model.ErrPolicyViolation, settings.MinNoticeHours))
	}
	if settings.MaxDaysAhead > 0 {
		horizon := now.Truncate(24 * time.Hour).AddDate(0, 0, settings.MaxDaysAhead)
		if date.After(horizon) {
			return c.reject(attempt, "beyond booking horizon", fmt.Errorf("%w: bookings open at most %d days ahead", model.ErrPolicyViolation, settings.MaxDaysAhead))
		}
	}

	travelDur := time.Duration(0)
	if req.Venue != nil {
		if settings.ServiceRadiusKm > 0 {
			if km := distance.Kilometers(chef.Location, *req.Venue); km > settings.ServiceRadiusKm {
				return c.reject(attempt, "outside service radius", fmt.Errorf("%w: venue is %.1fkm away, radius is %.0fkm", model.ErrPolicyViolation, km, settings.ServiceRadiusKm))
			}
		}
		if c.travel != nil {
			travelDur, err = c.travel.TravelDuration(ctx, chef.Location, *req.Venue)
			if err != nil {
				return attempt, fmt.Errorf("estimate travel duration: %w", err)
			}
		}
	}
	times := availability.ComputeSessionTimes(req.Start, travelDur, settings)

	windows, err := c.schedule.WeeklyWindows(ctx, req.ChefID)
	if err != nil {
		return attempt, fmt.Errorf("load weekly windows: %w", err)
	}
	blocked, err := c.blocked.BlockedIntervals(ctx, req.ChefID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return attempt, fmt.Errorf("load blocked intervals: %w", err)
	}

	session := model.CommittedSession{
		ID:          "",
		ChefID:      req.ChefID,
		CustomerID:  req.CustomerID,
		Date:        date,
		TravelStart: times.BeginTravel,
		Start:       req.Start,
		End:         req.End,
		Status:      model.SessionStatusCommitted,
	}

	// The committed set must be the latest, read under the chef lock.
	sessions, err := tx.CommittedSessions(ctx, req.ChefID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return c.reject(attempt, err.Error(), err)
	}

	day := availability.DayInputs{
		Date:     date,
		Windows:  windows,
		Blocked:  blocked,
		Sessions: sessions,
		Settings: settings,
	}
	if settings.MaxSessionsPerDay > 0 && committedCount(sessions) >= settings.MaxSessionsPerDay {
		err := fmt.Errorf("%w: date already has %d sessions", model.ErrPolicyViolation, settings.MaxSessionsPerDay)
		return c.reject(attempt, err.Error(), err)
	}
	if !containedInFree(day, times.BeginTravel, req.End) {
		err := fmt.Errorf("%w: %s-%s on %s", model.ErrSlotNoLongerAvailable,
			req.Start.Format("15:04"), req.End.Format("15:04"), date.Format("2006-01-02"))
		return c.reject(attempt, err.Error(), err)
	}
	attempt.State = StateValidated

	if err := tx.InsertSession(ctx, &session); err != nil {
		if c.conflict(err) {
			err = fmt.Errorf("%w: concurrent booking won the slot", model.ErrSlotNoLongerAvailable)
		}
		return c.reject(attempt, err.Error(), err)
	}
	if err := tx.AppendEvent(ctx, committedEvent(session)); err != nil {
		return c.reject(attempt, err.Error(), err)
	}

	attempt.State = StateCommitted
	attempt.Session = session
	return attempt, nil
}

// Cancel soft-deletes a committed session, freeing its window, and emits
// the cancellation event in the same transaction.
func (c *Control) Cancel(ctx context.Context, chefID, sessionID, reason string) (model.CommittedSession, error) {
	var cancelled model.CommittedSession
	err := c.store.WithChefLock(ctx, chefID, func(tx Tx) error {
		s, err := tx.CancelSession(ctx, chefID, sessionID, reason)
		if err != nil {
			return err
		}
		cancelled = s
		return tx.AppendEvent(ctx, cancelledEvent(s, reason))
	})
	if err != nil {
		return model.CommittedSession{}, err
	}
	c.logger.Info("booking cancelled", "chef_id", chefID, "session_id", sessionID)
	return cancelled, nil
}

func (c *Control) reject(attempt Attempt, reason string, err error) (Attempt, error) {
	attempt.State = StateRejected
	attempt.Reason = reason
	return attempt, err
}

// containedInFree reports whether [start, end) fits entirely inside one of
// the date's free intervals.
func containedInFree(day availability.DayInputs, start, end time.Time) bool {
	for _, f := range availability.ComputeDaySlots(day, 0) {
		if f.Contains(start, end) {
			return true
		}
	}
	return false
}

func committedCount(sessions []model.CommittedSession) int {
	n := 0
	for _, s := range sessions {
		if s.Status != model.SessionStatusCancelled {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
