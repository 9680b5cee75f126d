package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/cache"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

type AvailabilityHandler struct {
	engine *availability.Engine
	cache  *cache.AvailabilityCache
	logger *slog.Logger
}

func NewAvailabilityHandler(engine *availability.Engine, slotCache *cache.AvailabilityCache, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{engine: engine, cache: slotCache, logger: logger}
}

type slotItem struct {
	ChefID          string `json:"chefId"`
	ChefName        string `json:"chefName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Note            string `json:"note,omitempty"`
}

// Slots serves free-slot queries for a single date or a date range.
func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	chefID := strings.TrimSpace(r.URL.Query().Get("chef_id"))
	if chefID == "" {
		http.Error(w, "chef_id required", http.StatusBadRequest)
		return
	}
	minDuration, ok := parseMinDuration(w, r)
	if !ok {
		return
	}

	var from, to time.Time
	var err error
	if dateStr := strings.TrimSpace(r.URL.Query().Get("date")); dateStr != "" {
		from, err = time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		to = from
	} else {
		from, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(r.URL.Query().Get("from")), time.UTC)
		if err != nil {
			http.Error(w, "date or from/to required", http.StatusBadRequest)
			return
		}
		to, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(r.URL.Query().Get("to")), time.UTC)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
	}

	query := fmt.Sprintf("%s:%s:%d", from.Format("2006-01-02"), to.Format("2006-01-02"), int(minDuration/time.Minute))
	if slots, ok := h.cache.GetSlots(r.Context(), chefID, query); ok {
		writeJSON(w, http.StatusOK, slotItems(slots))
		return
	}

	slots, err := h.engine.FindSlotsRange(r.Context(), chefID, from, to, minDuration)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.cache.SetSlots(r.Context(), chefID, query, slots)
	writeJSON(w, http.StatusOK, slotItems(slots))
}

// SlotsWithCookingTime folds the cook-time estimate for a dish selection
// into the free slots, so the reported duration is actual serving time.
func (h *AvailabilityHandler) SlotsWithCookingTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	chefID := strings.TrimSpace(q.Get("chef_id"))
	if chefID == "" {
		http.Error(w, "chef_id required", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(q.Get("date")), time.UTC)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	guests, err := strconv.Atoi(strings.TrimSpace(q.Get("guests")))
	if err != nil || guests <= 0 {
		http.Error(w, "guests must be a positive integer", http.StatusBadRequest)
		return
	}
	minDuration, ok := parseMinDuration(w, r)
	if !ok {
		return
	}

	sel := availability.Selection{MenuID: strings.TrimSpace(q.Get("menu_id"))}
	if raw := strings.TrimSpace(q.Get("dish_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				sel.DishIDs = append(sel.DishIDs, id)
			}
		}
	}
	if sel.MenuID == "" && len(sel.DishIDs) == 0 {
		http.Error(w, "dish_ids or menu_id required", http.StatusBadRequest)
		return
	}
	venue, ok := parseVenue(w, q.Get("venue_lat"), q.Get("venue_lng"))
	if !ok {
		return
	}
	sel.Venue = venue

	slots, err := h.engine.FindSlotsWithCookingTime(r.Context(), chefID, date, sel, guests, minDuration)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slotItems(slots))
}

// Check answers whether a specific span is currently free. The answer is
// advisory; booking re-validates under the chef lock.
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	chefID := strings.TrimSpace(q.Get("chef_id"))
	if chefID == "" {
		http.Error(w, "chef_id required", http.StatusBadRequest)
		return
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(q.Get("start")))
	if err != nil {
		http.Error(w, "invalid start", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(q.Get("end")))
	if err != nil {
		http.Error(w, "invalid end", http.StatusBadRequest)
		return
	}

	free, err := h.engine.IsAvailable(r.Context(), chefID, start.UTC(), start.UTC(), end.UTC())
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": free})
}

func (h *AvailabilityHandler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrChefNotFound):
		http.Error(w, "chef not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidDateRange), errors.Is(err, model.ErrInvalidSelection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("availability query failed", "err", err)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
	}
}

func slotItems(slots []model.TimeSlot) []slotItem {
	items := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotItem{
			ChefID:          s.ChefID,
			ChefName:        s.ChefName,
			Date:            s.Date.UTC().Format("2006-01-02"),
			StartTime:       s.Start.UTC().Format(time.RFC3339),
			EndTime:         s.End.UTC().Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Note:            s.Note,
		})
	}
	return items
}

func parseMinDuration(w http.ResponseWriter, r *http.Request) (time.Duration, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("min_duration_minutes"))
	if raw == "" {
		return 0, true
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins < 0 || mins > 24*60 {
		http.Error(w, "invalid min_duration_minutes", http.StatusBadRequest)
		return 0, false
	}
	return time.Duration(mins) * time.Minute, true
}

func parseVenue(w http.ResponseWriter, latRaw, lngRaw string) (*model.GeoPoint, bool) {
	latRaw = strings.TrimSpace(latRaw)
	lngRaw = strings.TrimSpace(lngRaw)
	if latRaw == "" && lngRaw == "" {
		return nil, true
	}
	if latRaw == "" || lngRaw == "" {
		http.Error(w, "venue_lat and venue_lng must be set together", http.StatusBadRequest)
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lng, err2 := strconv.ParseFloat(lngRaw, 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid venue coordinates", http.StatusBadRequest)
		return nil, false
	}
	return &model.GeoPoint{Lat: lat, Lng: lng}, true
}
