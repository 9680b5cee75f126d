package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

func testCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewAvailabilityCache(rdb, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func sampleSlots() []model.TimeSlot {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	return []model.TimeSlot{
		{
			ChefID:          "chef-1",
			ChefName:        "Ayesha",
			Date:            date,
			Start:           date.Add(14 * time.Hour),
			End:             date.Add(17 * time.Hour),
			DurationMinutes: 180,
			Note:            "ends 60m before the next booking to allow travel",
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	if _, ok := c.GetSlots(ctx, "chef-1", "2026-09-07:0"); ok {
		t.Fatalf("unexpected hit on empty cache")
	}

	want := sampleSlots()
	c.SetSlots(ctx, "chef-1", "2026-09-07:0", want)

	got, ok := c.GetSlots(ctx, "chef-1", "2026-09-07:0")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if len(got) != 1 {
		t.Fatalf("got %d slots, want 1", len(got))
	}
	if !got[0].Start.Equal(want[0].Start) || got[0].DurationMinutes != 180 || got[0].Note != want[0].Note {
		t.Fatalf("got %+v, want %+v", got[0], want[0])
	}
}

func TestInvalidateBumpsVersion(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	c.SetSlots(ctx, "chef-1", "2026-09-07:0", sampleSlots())
	c.Invalidate(ctx, "chef-1")

	if _, ok := c.GetSlots(ctx, "chef-1", "2026-09-07:0"); ok {
		t.Fatalf("expected miss after invalidation")
	}

	// A different chef's entries survive.
	c.SetSlots(ctx, "chef-2", "2026-09-07:0", sampleSlots())
	c.Invalidate(ctx, "chef-1")
	if _, ok := c.GetSlots(ctx, "chef-2", "2026-09-07:0"); !ok {
		t.Fatalf("expected chef-2 entry to survive chef-1 invalidation")
	}
}

func TestCacheExpires(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.SetSlots(ctx, "chef-1", "2026-09-07:0", sampleSlots())
	mr.FastForward(2 * time.Minute)

	if _, ok := c.GetSlots(ctx, "chef-1", "2026-09-07:0"); ok {
		t.Fatalf("expected miss after ttl")
	}
}
