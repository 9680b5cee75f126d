package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/cooktime"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// The engine pulls everything it needs through these narrow source
// interfaces. Storage implements them against Postgres; tests implement
// them in memory. Queries are pure reads over the snapshot the sources
// return, so they can run fully in parallel.

type ChefDirectory interface {
	ChefProfile(ctx context.Context, chefID string) (model.Chef, error)
}

type ScheduleSource interface {
	WeeklyWindows(ctx context.Context, chefID string) ([]model.WeeklyWindow, error)
}

type BlockedDateSource interface {
	BlockedIntervals(ctx context.Context, chefID string, from, to time.Time) ([]model.BlockedInterval, error)
}

type BookingSource interface {
	CommittedSessions(ctx context.Context, chefID string, from, to time.Time) ([]model.CommittedSession, error)
}

type TimeSettingsSource interface {
	TimeSettings(ctx context.Context, chefID string) (model.TimeSettings, error)
}

type DishSource interface {
	Dishes(ctx context.Context, chefID string, dishIDs []string) ([]model.DishCookProfile, error)
	MenuDishes(ctx context.Context, chefID, menuID string) ([]model.DishCookProfile, error)
}

// DistanceProvider returns the travel duration between two coordinates.
// Implementations live in internal/distance.
type DistanceProvider interface {
	TravelDuration(ctx context.Context, origin, destination model.GeoPoint) (time.Duration, error)
}

// Selection names the dishes a customer wants cooked: either an explicit
// dish list or a menu id, plus an optional venue for travel estimation.
type Selection struct {
	DishIDs []string
	MenuID  string
	Venue   *model.GeoPoint
}

// Engine answers "what slots are free" queries. All operations are
// read-only, side-effect free, and deterministic for unchanged inputs.
type Engine struct {
	dir      ChefDirectory
	schedule ScheduleSource
	blocked  BlockedDateSource
	bookings BookingSource
	settings TimeSettingsSource
	dishes   DishSource
	distance DistanceProvider
}

func NewEngine(dir ChefDirectory, schedule ScheduleSource, blocked BlockedDateSource, bookings BookingSource, settings TimeSettingsSource, dishes DishSource, distance DistanceProvider) *Engine {
	return &Engine{
		dir:      dir,
		schedule: schedule,
		blocked:  blocked,
		bookings: bookings,
		settings: settings,
		dishes:   dishes,
		distance: distance,
	}
}

// FindSlots returns the free slots for a single date. No availability is
// not an error: the result is simply empty.
func (e *Engine) FindSlots(ctx context.Context, chefID string, date time.Time, minDuration time.Duration) ([]model.TimeSlot, error) {
	return e.FindSlotsRange(ctx, chefID, date, date, minDuration)
}

// FindSlotsRange returns free slots for each date in [from, to], inclusive,
// in chronological order.
func (e *Engine) FindSlotsRange(ctx context.Context, chefID string, from, to time.Time, minDuration time.Duration) ([]model.TimeSlot, error) {
	chef, snap, err := e.loadSnapshot(ctx, chefID, from, to)
	if err != nil {
		return nil, err
	}

	slots := []model.TimeSlot{}
	for date := snap.from; !date.After(snap.to); date = date.AddDate(0, 0, 1) {
		day := DayInputs{
			Date:     date,
			Windows:  snap.windows,
			Blocked:  snap.blocked,
			Sessions: sessionsOn(snap.sessions, date),
			Settings: snap.settings,
		}
		for _, f := range ComputeDaySlots(day, minDuration) {
			slots = append(slots, model.TimeSlot{
				ChefID:          chef.ID,
				ChefName:        chef.Name,
				Date:            date,
				Start:           f.Start,
				End:             f.End,
				DurationMinutes: int(f.Duration() / time.Minute),
				Note:            bufferNote(f, day.Sessions),
			})
		}
	}
	return slots, nil
}

// IsAvailable reports whether [start, end) is fully contained in some free
// interval of the chef's day.
func (e *Engine) IsAvailable(ctx context.Context, chefID string, date time.Time, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, fmt.Errorf("%w: end must be after start", model.ErrInvalidDateRange)
	}
	slots, err := e.FindSlots(ctx, chefID, date, 0)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if (Interval{Start: s.Start, End: s.End}).Contains(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// FindSlotsWithCookingTime composes the cook-time estimate and the travel
// lead buffer into the day's free intervals. Each returned slot reports the
// adjusted usable duration: the window length minus cook, prep, and cleanup
// time, so a customer sees how much serving time actually remains.
func (e *Engine) FindSlotsWithCookingTime(ctx context.Context, chefID string, date time.Time, sel Selection, guests int, minDuration time.Duration) ([]model.TimeSlot, error) {
	chef, snap, err := e.loadSnapshot(ctx, chefID, date, date)
	if err != nil {
		return nil, err
	}

	dishes, err := e.resolveSelection(ctx, chefID, sel)
	if err != nil {
		return nil, err
	}
	est, err := cooktime.ForSelection(dishes, guests, snap.settings)
	if err != nil {
		return nil, err
	}

	travel := time.Duration(0)
	if sel.Venue != nil && e.distance != nil {
		travel, err = e.distance.TravelDuration(ctx, chef.Location, *sel.Venue)
		if err != nil {
			return nil, fmt.Errorf("estimate travel duration: %w", err)
		}
	}
	lead := ComputeSessionTimes(date, travel, snap.settings).LeadBuffer()

	day := DayInputs{
		Date:     snap.from,
		Windows:  snap.windows,
		Blocked:  snap.blocked,
		Sessions: sessionsOn(snap.sessions, snap.from),
		Settings: snap.settings,
	}

	occupied := lead + time.Duration(est.CookMinutes)*time.Minute + time.Duration(snap.settings.CleanupMinutes)*time.Minute

	slots := []model.TimeSlot{}
	for _, f := range ComputeDaySlots(day, 0) {
		if f.Duration() < occupied {
			continue
		}
		usable := f.Duration() - time.Duration(est.TotalMinutes())*time.Minute
		if usable <= 0 || usable < minDuration {
			continue
		}
		note := fmt.Sprintf("includes %dm cooking and %dm prep/cleanup", int(est.CookMinutes), est.OverheadMinutes)
		if lead > 0 {
			note = fmt.Sprintf("%s; chef needs %dm lead time before serving", note, int(lead/time.Minute))
		}
		slots = append(slots, model.TimeSlot{
			ChefID:          chef.ID,
			ChefName:        chef.Name,
			Date:            snap.from,
			Start:           f.Start,
			End:             f.End,
			DurationMinutes: int(usable / time.Minute),
			Note:            note,
		})
	}
	return slots, nil
}

type snapshot struct {
	from, to time.Time
	windows  []model.WeeklyWindow
	blocked  []model.BlockedInterval
	sessions []model.CommittedSession
	settings model.TimeSettings
}

// loadSnapshot validates the request and pulls a consistent read snapshot
// from the sources.
func (e *Engine) loadSnapshot(ctx context.Context, chefID string, from, to time.Time) (model.Chef, snapshot, error) {
	chef, err := e.dir.ChefProfile(ctx, chefID)
	if err != nil {
		return model.Chef{}, snapshot{}, err
	}

	fromDay := from.UTC().Truncate(24 * time.Hour)
	toDay := to.UTC().Truncate(24 * time.Hour)
	if toDay.Before(fromDay) {
		return model.Chef{}, snapshot{}, fmt.Errorf("%w: end %s before start %s", model.ErrInvalidDateRange, toDay.Format("2006-01-02"), fromDay.Format("2006-01-02"))
	}

	settings, err := e.settings.TimeSettings(ctx, chefID)
	if err != nil {
		return model.Chef{}, snapshot{}, fmt.Errorf("load time settings: %w", err)
	}
	if settings.MaxDaysAhead > 0 {
		if span := int(toDay.Sub(fromDay).Hours() / 24); span > settings.MaxDaysAhead {
			return model.Chef{}, snapshot{}, fmt.Errorf("%w: range spans %d days, max is %d", model.ErrInvalidDateRange, span, settings.MaxDaysAhead)
		}
	}

	windows, err := e.schedule.WeeklyWindows(ctx, chefID)
	if err != nil {
		return model.Chef{}, snapshot{}, fmt.Errorf("load weekly windows: %w", err)
	}
	blocked, err := e.blocked.BlockedIntervals(ctx, chefID, fromDay, toDay.AddDate(0, 0, 1))
	if err != nil {
		return model.Chef{}, snapshot{}, fmt.Errorf("load blocked intervals: %w", err)
	}
	sessions, err := e.bookings.CommittedSessions(ctx, chefID, fromDay, toDay.AddDate(0, 0, 1))
	if err != nil {
		return model.Chef{}, snapshot{}, fmt.Errorf("load committed sessions: %w", err)
	}

	return chef, snapshot{
		from:     fromDay,
		to:       toDay,
		windows:  windows,
		blocked:  blocked,
		sessions: sessions,
		settings: settings,
	}, nil
}

func (e *Engine) resolveSelection(ctx context.Context, chefID string, sel Selection) ([]model.DishCookProfile, error) {
	if sel.MenuID != "" {
		return e.dishes.MenuDishes(ctx, chefID, sel.MenuID)
	}
	return e.dishes.Dishes(ctx, chefID, sel.DishIDs)
}

func sessionsOn(sessions []model.CommittedSession, date time.Time) []model.CommittedSession {
	var out []model.CommittedSession
	for _, s := range sessions {
		if sameDate(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}

// bufferNote explains a slot boundary created by a neighbouring session's
// travel lead buffer rather than the session itself.
func bufferNote(free Interval, sessions []model.CommittedSession) string {
	for _, s := range sessions {
		if s.Status == model.SessionStatusCancelled {
			continue
		}
		if s.TravelStart.IsZero() || !s.TravelStart.Before(s.Start) {
			continue
		}
		if free.End.Equal(s.TravelStart) {
			lead := int(s.Start.Sub(s.TravelStart) / time.Minute)
			return fmt.Sprintf("ends %dm before the next booking to allow travel", lead)
		}
	}
	return ""
}
