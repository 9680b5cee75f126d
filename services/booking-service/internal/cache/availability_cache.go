package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// AvailabilityCache is a read-through cache for computed slot snapshots.
// Entries are keyed by a per-chef version counter; invalidation bumps the
// counter, so stale snapshots simply expire without key scans.
type AvailabilityCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, logger: logger}
}

type cachedSlot struct {
	ChefID          string `json:"chefId"`
	ChefName        string `json:"chefName"`
	Date            string `json:"date"`
	Start           string `json:"startTime"`
	End             string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Note            string `json:"note,omitempty"`
}

// GetSlots returns the cached snapshot for the query, if any. Cache errors
// degrade to a miss.
func (c *AvailabilityCache) GetSlots(ctx context.Context, chefID, query string) ([]model.TimeSlot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	key, err := c.slotKey(ctx, chefID, query)
	if err != nil {
		c.logger.Warn("slot cache version lookup failed", "err", err)
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("slot cache read failed", "err", err)
		return nil, false
	}

	var cached []cachedSlot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	slots := make([]model.TimeSlot, 0, len(cached))
	for _, s := range cached {
		date, err1 := time.Parse("2006-01-02", s.Date)
		start, err2 := time.Parse(time.RFC3339, s.Start)
		end, err3 := time.Parse(time.RFC3339, s.End)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, false
		}
		slots = append(slots, model.TimeSlot{
			ChefID:          s.ChefID,
			ChefName:        s.ChefName,
			Date:            date,
			Start:           start,
			End:             end,
			DurationMinutes: s.DurationMinutes,
			Note:            s.Note,
		})
	}
	return slots, true
}

func (c *AvailabilityCache) SetSlots(ctx context.Context, chefID, query string, slots []model.TimeSlot) {
	if c == nil || c.rdb == nil {
		return
	}
	key, err := c.slotKey(ctx, chefID, query)
	if err != nil {
		return
	}
	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{
			ChefID:          s.ChefID,
			ChefName:        s.ChefName,
			Date:            s.Date.UTC().Format("2006-01-02"),
			Start:           s.Start.UTC().Format(time.RFC3339),
			End:             s.End.UTC().Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Note:            s.Note,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("slot cache write failed", "err", err)
	}
}

// Invalidate drops every cached snapshot for the chef by bumping the
// version counter. Called after any write that can change availability.
func (c *AvailabilityCache) Invalidate(ctx context.Context, chefID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey(chefID)).Err(); err != nil {
		c.logger.Warn("slot cache invalidation failed", "chef_id", chefID, "err", err)
	}
}

func (c *AvailabilityCache) slotKey(ctx context.Context, chefID, query string) (string, error) {
	ver, err := c.rdb.Get(ctx, versionKey(chefID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("slots:%s:v%d:%s", chefID, ver, query), nil
}

func versionKey(chefID string) string {
	return "slots:ver:" + chefID
}
