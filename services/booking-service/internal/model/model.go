package model

import "time"

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Chef is the directory view of a chef needed by the scheduling engine.
// Profile CRUD lives elsewhere; the engine only reads this snapshot.
type Chef struct {
	ID       string
	Name     string
	Status   string
	Location GeoPoint
}

const (
	ChefStatusPending  = "pending"
	ChefStatusApproved = "approved"
	ChefStatusDisabled = "disabled"
)

// WeeklyWindow is one recurring availability window on a weekday.
// Times are minutes from midnight; StartMinute < EndMinute, windows never
// cross midnight. A weekday may carry several windows; upstream guarantees
// they do not overlap each other.
type WeeklyWindow struct {
	ChefID      string
	Weekday     int // 0 = Sunday .. 6 = Saturday
	StartMinute int
	EndMinute   int
}

// BlockedInterval is a one-off unavailable span on a single date.
type BlockedInterval struct {
	ID          string
	ChefID      string
	Date        time.Time // midnight UTC
	StartMinute int
	EndMinute   int
	Reason      string
}

// CommittedSession is a confirmed booking's occupied span including the
// travel lead time. TravelStart <= Start; the lead buffer subtracted from
// availability is Start - TravelStart.
type CommittedSession struct {
	ID          string
	ChefID      string
	CustomerID  string
	Date        time.Time
	TravelStart time.Time
	Start       time.Time
	End         time.Time
	Status      string
	CancelledAt *time.Time
	CreatedAt   time.Time
}

const (
	SessionStatusCommitted = "committed"
	SessionStatusCancelled = "cancelled"
)

// TimeSettings is the per-chef tunable time policy. One row per chef,
// created with defaults on approval. Treated as a read-only snapshot for
// the duration of a single availability computation.
type TimeSettings struct {
	ChefID              string
	PrepMinutes         int
	CleanupMinutes      int
	TravelBufferPercent float64
	CookingEfficiency   float64 // 0.5 .. 1.0
	MinNoticeHours      int
	MaxDaysAhead        int
	MaxDishesPerSession int
	MaxGuestsPerSession int
	ServiceRadiusKm     float64
	MaxSessionsPerDay   int
}

// DefaultTimeSettings returns the policy applied when a chef is approved.
func DefaultTimeSettings(chefID string) TimeSettings {
	return TimeSettings{
		ChefID:              chefID,
		PrepMinutes:         30,
		CleanupMinutes:      30,
		TravelBufferPercent: 20,
		CookingEfficiency:   1.0,
		MinNoticeHours:      24,
		MaxDaysAhead:        60,
		MaxDishesPerSession: 8,
		MaxGuestsPerSession: 12,
		ServiceRadiusKm:     30,
		MaxSessionsPerDay:   2,
	}
}

// DishCookProfile describes how long one dish takes to cook and how many
// guests a single cook cycle serves.
type DishCookProfile struct {
	ID              string
	ChefID          string
	Name            string
	CookTimeMinutes float64
	CookGroup       int // guests servable per cook cycle, >= 1
}

// Menu is a named dish selection owned by a chef.
type Menu struct {
	ID      string
	ChefID  string
	Name    string
	DishIDs []string
}

// TimeSlot is a free interval that could host a new booking. It is a
// computed projection returned from availability queries, never persisted.
type TimeSlot struct {
	ChefID          string
	ChefName        string
	Date            time.Time
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Note            string
}
