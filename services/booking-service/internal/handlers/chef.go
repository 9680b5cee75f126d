package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/cache"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/storage"
)

// ChefHandler is the chef-facing configuration surface: weekly schedule,
// blocked dates, time settings, dishes, and menus.
type ChefHandler struct {
	repo   *storage.ChefRepository
	cache  *cache.AvailabilityCache
	logger *slog.Logger
}

func NewChefHandler(repo *storage.ChefRepository, slotCache *cache.AvailabilityCache, logger *slog.Logger) *ChefHandler {
	return &ChefHandler{repo: repo, cache: slotCache, logger: logger}
}

type weeklyWindowItem struct {
	Weekday     int `json:"weekday"`
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

type blockedDateItem struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Reason      string `json:"reason,omitempty"`
}

type timeSettingsBody struct {
	PrepMinutes         int     `json:"prep_minutes"`
	CleanupMinutes      int     `json:"cleanup_minutes"`
	TravelBufferPercent float64 `json:"travel_buffer_percent"`
	CookingEfficiency   float64 `json:"cooking_efficiency"`
	MinNoticeHours      int     `json:"min_notice_hours"`
	MaxDaysAhead        int     `json:"max_days_ahead"`
	MaxDishesPerSession int     `json:"max_dishes_per_session"`
	MaxGuestsPerSession int     `json:"max_guests_per_session"`
	ServiceRadiusKm     float64 `json:"service_radius_km"`
	MaxSessionsPerDay   int     `json:"max_sessions_per_day"`
}

type dishBody struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name"`
	CookTimeMinutes float64 `json:"cook_time_minutes"`
	CookGroup       int     `json:"cook_group"`
}

type menuBody struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	DishIDs []string `json:"dish_ids"`
}

func (h *ChefHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		windows, err := h.repo.WeeklyWindows(r.Context(), chefID)
		if err != nil {
			http.Error(w, "failed to load schedule", http.StatusInternalServerError)
			return
		}
		items := make([]weeklyWindowItem, 0, len(windows))
		for _, win := range windows {
			items = append(items, weeklyWindowItem{Weekday: win.Weekday, StartMinute: win.StartMinute, EndMinute: win.EndMinute})
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPut:
		var items []weeklyWindowItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		windows := make([]model.WeeklyWindow, 0, len(items))
		for _, it := range items {
			windows = append(windows, model.WeeklyWindow{
				ChefID:      chefID,
				Weekday:     it.Weekday,
				StartMinute: it.StartMinute,
				EndMinute:   it.EndMinute,
			})
		}
		if err := h.repo.ReplaceWeeklyWindows(r.Context(), chefID, windows); err != nil {
			if errors.Is(err, model.ErrInvalidDateRange) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "failed to save schedule", http.StatusInternalServerError)
			return
		}
		h.cache.Invalidate(r.Context(), chefID)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ChefHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		from, to, ok := parseDateRange(w, r)
		if !ok {
			return
		}
		blocked, err := h.repo.BlockedIntervals(r.Context(), chefID, from, to.AddDate(0, 0, 1))
		if err != nil {
			http.Error(w, "failed to load blocked dates", http.StatusInternalServerError)
			return
		}
		items := make([]blockedDateItem, 0, len(blocked))
		for _, b := range blocked {
			items = append(items, blockedDateItem{
				ID:          b.ID,
				Date:        b.Date.UTC().Format("2006-01-02"),
				StartMinute: b.StartMinute,
				EndMinute:   b.EndMinute,
				Reason:      b.Reason,
			})
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var body blockedDateItem
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		date, err := time.ParseInLocation("2006-01-02", body.Date, time.UTC)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		blocked := model.BlockedInterval{
			ChefID:      chefID,
			Date:        date,
			StartMinute: body.StartMinute,
			EndMinute:   body.EndMinute,
			Reason:      strings.TrimSpace(body.Reason),
		}
		if err := h.repo.CreateBlockedInterval(r.Context(), &blocked); err != nil {
			if errors.Is(err, model.ErrInvalidDateRange) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "failed to create blocked date", http.StatusInternalServerError)
			return
		}
		h.cache.Invalidate(r.Context(), chefID)
		body.ID = blocked.ID
		writeJSON(w, http.StatusCreated, body)

	case http.MethodDelete:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}
		if err := h.repo.DeleteBlockedInterval(r.Context(), chefID, id); err != nil {
			if storage.IsNotFound(err) {
				http.Error(w, "blocked date not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to delete blocked date", http.StatusInternalServerError)
			return
		}
		h.cache.Invalidate(r.Context(), chefID)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ChefHandler) TimeSettings(w http.ResponseWriter, r *http.Request) {
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		settings, err := h.repo.TimeSettings(r.Context(), chefID)
		if err != nil {
			http.Error(w, "failed to load time settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settingsBody(settings))

	case http.MethodPut:
		var body timeSettingsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		settings := model.TimeSettings{
			ChefID:              chefID,
			PrepMinutes:         body.PrepMinutes,
			CleanupMinutes:      body.CleanupMinutes,
			TravelBufferPercent: body.TravelBufferPercent,
			CookingEfficiency:   body.CookingEfficiency,
			MinNoticeHours:      body.MinNoticeHours,
			MaxDaysAhead:        body.MaxDaysAhead,
			MaxDishesPerSession: body.MaxDishesPerSession,
			MaxGuestsPerSession: body.MaxGuestsPerSession,
			ServiceRadiusKm:     body.ServiceRadiusKm,
			MaxSessionsPerDay:   body.MaxSessionsPerDay,
		}
		if msg := validateSettings(settings); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err := h.repo.UpdateTimeSettings(r.Context(), settings); err != nil {
			http.Error(w, "failed to save time settings", http.StatusInternalServerError)
			return
		}
		h.cache.Invalidate(r.Context(), chefID)
		writeJSON(w, http.StatusOK, settingsBody(settings))

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ChefHandler) ResetTimeSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}
	settings, err := h.repo.ResetTimeSettings(r.Context(), chefID)
	if err != nil {
		http.Error(w, "failed to reset time settings", http.StatusInternalServerError)
		return
	}
	h.cache.Invalidate(r.Context(), chefID)
	writeJSON(w, http.StatusOK, settingsBody(settings))
}

func (h *ChefHandler) Dishes(w http.ResponseWriter, r *http.Request) {
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		dishes, err := h.repo.ListDishes(r.Context(), chefID)
		if err != nil {
			http.Error(w, "failed to list dishes", http.StatusInternalServerError)
			return
		}
		items := make([]dishBody, 0, len(dishes))
		for _, d := range dishes {
			items = append(items, dishBody{ID: d.ID, Name: d.Name, CookTimeMinutes: d.CookTimeMinutes, CookGroup: d.CookGroup})
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var body dishBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		dish := model.DishCookProfile{
			ID:              strings.TrimSpace(body.ID),
			ChefID:          chefID,
			Name:            body.Name,
			CookTimeMinutes: body.CookTimeMinutes,
			CookGroup:       body.CookGroup,
		}
		if err := h.repo.UpsertDish(r.Context(), &dish); err != nil {
			switch {
			case errors.Is(err, model.ErrInvalidSelection):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case storage.IsNotFound(err):
				http.Error(w, "dish not found", http.StatusNotFound)
			default:
				http.Error(w, "failed to save dish", http.StatusInternalServerError)
			}
			return
		}
		body.ID = dish.ID
		writeJSON(w, http.StatusOK, body)

	case http.MethodDelete:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}
		if err := h.repo.DeleteDish(r.Context(), chefID, id); err != nil {
			if storage.IsNotFound(err) {
				http.Error(w, "dish not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to delete dish", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ChefHandler) Menus(w http.ResponseWriter, r *http.Request) {
	chefID, ok := requireChefID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		menus, err := h.repo.ListMenus(r.Context(), chefID)
		if err != nil {
			http.Error(w, "failed to list menus", http.StatusInternalServerError)
			return
		}
		items := make([]menuBody, 0, len(menus))
		for _, m := range menus {
			items = append(items, menuBody{ID: m.ID, Name: m.Name, DishIDs: m.DishIDs})
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var body menuBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || len(body.DishIDs) == 0 {
			http.Error(w, "name and dish_ids required", http.StatusBadRequest)
			return
		}
		menu := model.Menu{ChefID: chefID, Name: body.Name, DishIDs: body.DishIDs}
		if err := h.repo.CreateMenu(r.Context(), &menu); err != nil {
			http.Error(w, "failed to create menu", http.StatusInternalServerError)
			return
		}
		body.ID = menu.ID
		writeJSON(w, http.StatusCreated, body)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func settingsBody(s model.TimeSettings) timeSettingsBody {
	return timeSettingsBody{
		PrepMinutes:         s.PrepMinutes,
		CleanupMinutes:      s.CleanupMinutes,
		TravelBufferPercent: s.TravelBufferPercent,
		CookingEfficiency:   s.CookingEfficiency,
		MinNoticeHours:      s.MinNoticeHours,
		MaxDaysAhead:        s.MaxDaysAhead,
		MaxDishesPerSession: s.MaxDishesPerSession,
		MaxGuestsPerSession: s.MaxGuestsPerSession,
		ServiceRadiusKm:     s.ServiceRadiusKm,
		MaxSessionsPerDay:   s.MaxSessionsPerDay,
	}
}

func validateSettings(s model.TimeSettings) string {
	switch {
	case s.PrepMinutes < 0 || s.CleanupMinutes < 0:
		return "prep and cleanup minutes must be non-negative"
	case s.TravelBufferPercent < 0 || s.TravelBufferPercent > 100:
		return "travel_buffer_percent must be between 0 and 100"
	case s.CookingEfficiency < 0.5 || s.CookingEfficiency > 1.0:
		return "cooking_efficiency must be between 0.5 and 1.0"
	case s.MinNoticeHours < 0 || s.MaxDaysAhead < 0:
		return "notice and horizon must be non-negative"
	case s.MaxDishesPerSession < 1 || s.MaxGuestsPerSession < 1:
		return "dish and guest limits must be at least 1"
	case s.ServiceRadiusKm < 0 || s.MaxSessionsPerDay < 0:
		return "radius and session limits must be non-negative"
	default:
		return ""
	}
}

func requireChefID(w http.ResponseWriter, r *http.Request) (string, bool) {
	chefID := strings.TrimSpace(r.Header.Get("X-Chef-Id"))
	if chefID == "" {
		chefID = strings.TrimSpace(r.URL.Query().Get("chef_id"))
	}
	if chefID == "" {
		http.Error(w, "chef_id required", http.StatusBadRequest)
		return "", false
	}
	return chefID, true
}

func parseDateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()
	fromStr := strings.TrimSpace(q.Get("from"))
	toStr := strings.TrimSpace(q.Get("to"))
	if fromStr == "" {
		now := time.Now().UTC().Truncate(24 * time.Hour)
		return now, now.AddDate(0, 0, 60), true
	}
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.UTC)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	if toStr == "" {
		return from, from.AddDate(0, 0, 60), true
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.UTC)
	if err != nil || to.Before(from) {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
