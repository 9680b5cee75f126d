package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chefbook-app/chefbook/libs/db"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// ChefRepository backs the availability sources: chef profiles, weekly
// windows, blocked dates, time settings, dishes, and menus.
type ChefRepository struct {
	pool *db.Pool
}

func NewChefRepository(pool *db.Pool) *ChefRepository {
	return &ChefRepository{pool: pool}
}

func (r *ChefRepository) ChefProfile(ctx context.Context, chefID string) (model.Chef, error) {
	var chef model.Chef
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, status, lat, lng
		FROM chefs
		WHERE id = $1
	`, chefID).Scan(&chef.ID, &chef.Name, &chef.Status, &chef.Location.Lat, &chef.Location.Lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Chef{}, fmt.Errorf("%w: %s", model.ErrChefNotFound, chefID)
	}
	if err != nil {
		return model.Chef{}, err
	}
	return chef, nil
}

func (r *ChefRepository) RegisterChef(ctx context.Context, chef model.Chef) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chefs (id, name, status, lat, lng)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			status = EXCLUDED.status,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			updated_at = now()
	`, chef.ID, chef.Name, chef.Status, chef.Location.Lat, chef.Location.Lng)
	return err
}

func (r *ChefRepository) EnsureDefaultTimeSettings(ctx context.Context, chefID string) error {
	s := model.DefaultTimeSettings(chefID)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chef_time_settings
			(chef_id, prep_minutes, cleanup_minutes, travel_buffer_percent, cooking_efficiency,
			 min_notice_hours, max_days_ahead, max_dishes_per_session, max_guests_per_session,
			 service_radius_km, max_sessions_per_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (chef_id) DO NOTHING
	`, s.ChefID, s.PrepMinutes, s.CleanupMinutes, s.TravelBufferPercent, s.CookingEfficiency,
		s.MinNoticeHours, s.MaxDaysAhead, s.MaxDishesPerSession, s.MaxGuestsPerSession,
		s.ServiceRadiusKm, s.MaxSessionsPerDay)
	return err
}

func (r *ChefRepository) WeeklyWindows(ctx context.Context, chefID string) ([]model.WeeklyWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT chef_id::text, weekday, start_minute, end_minute
		FROM chef_weekly_windows
		WHERE chef_id = $1
		ORDER BY weekday, start_minute
	`, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []model.WeeklyWindow
	for rows.Next() {
		var w model.WeeklyWindow
		if err := rows.Scan(&w.ChefID, &w.Weekday, &w.StartMinute, &w.EndMinute); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// ReplaceWeeklyWindows swaps the full weekly schedule in one transaction.
func (r *ChefRepository) ReplaceWeeklyWindows(ctx context.Context, chefID string, windows []model.WeeklyWindow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM chef_weekly_windows WHERE chef_id = $1`, chefID); err != nil {
		return err
	}
	for _, w := range windows {
		if w.Weekday < 0 || w.Weekday > 6 || w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
			return fmt.Errorf("%w: window %d %d-%d", model.ErrInvalidDateRange, w.Weekday, w.StartMinute, w.EndMinute)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO chef_weekly_windows (chef_id, weekday, start_minute, end_minute)
			VALUES ($1, $2, $3, $4)
		`, chefID, w.Weekday, w.StartMinute, w.EndMinute); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ChefRepository) BlockedIntervals(ctx context.Context, chefID string, from, to time.Time) ([]model.BlockedInterval, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chef_id::text, date, start_minute, end_minute, COALESCE(reason, '')
		FROM chef_blocked_dates
		WHERE chef_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, start_minute
	`, chefID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocked []model.BlockedInterval
	for rows.Next() {
		var b model.BlockedInterval
		if err := rows.Scan(&b.ID, &b.ChefID, &b.Date, &b.StartMinute, &b.EndMinute, &b.Reason); err != nil {
			return nil, err
		}
		blocked = append(blocked, b)
	}
	return blocked, rows.Err()
}

func (r *ChefRepository) CreateBlockedInterval(ctx context.Context, b *model.BlockedInterval) error {
	if b.StartMinute < 0 || b.EndMinute > 24*60 || b.StartMinute >= b.EndMinute {
		return fmt.Errorf("%w: blocked span %d-%d", model.ErrInvalidDateRange, b.StartMinute, b.EndMinute)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO chef_blocked_dates (chef_id, date, start_minute, end_minute, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text
	`, b.ChefID, b.Date, b.StartMinute, b.EndMinute, b.Reason).Scan(&b.ID)
}

func (r *ChefRepository) DeleteBlockedInterval(ctx context.Context, chefID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM chef_blocked_dates WHERE id = $1 AND chef_id = $2
	`, id, chefID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// TimeSettings returns the chef's policy row, falling back to defaults when
// no row exists yet.
func (r *ChefRepository) TimeSettings(ctx context.Context, chefID string) (model.TimeSettings, error) {
	var s model.TimeSettings
	err := r.pool.QueryRow(ctx, `
		SELECT chef_id::text, prep_minutes, cleanup_minutes, travel_buffer_percent, cooking_efficiency,
			min_notice_hours, max_days_ahead, max_dishes_per_session, max_guests_per_session,
			service_radius_km, max_sessions_per_day
		FROM chef_time_settings
		WHERE chef_id = $1
	`, chefID).Scan(&s.ChefID, &s.PrepMinutes, &s.CleanupMinutes, &s.TravelBufferPercent, &s.CookingEfficiency,
		&s.MinNoticeHours, &s.MaxDaysAhead, &s.MaxDishesPerSession, &s.MaxGuestsPerSession,
		&s.ServiceRadiusKm, &s.MaxSessionsPerDay)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultTimeSettings(chefID), nil
	}
	if err != nil {
		return model.TimeSettings{}, err
	}
	return s, nil
}

func (r *ChefRepository) UpdateTimeSettings(ctx context.Context, s model.TimeSettings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chef_time_settings
			(chef_id, prep_minutes, cleanup_minutes, travel_buffer_percent, cooking_efficiency,
			 min_notice_hours, max_days_ahead, max_dishes_per_session, max_guests_per_session,
			 service_radius_km, max_sessions_per_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (chef_id) DO UPDATE
		SET prep_minutes = EXCLUDED.prep_minutes,
			cleanup_minutes = EXCLUDED.cleanup_minutes,
			travel_buffer_percent = EXCLUDED.travel_buffer_percent,
			cooking_efficiency = EXCLUDED.cooking_efficiency,
			min_notice_hours = EXCLUDED.min_notice_hours,
			max_days_ahead = EXCLUDED.max_days_ahead,
			max_dishes_per_session = EXCLUDED.max_dishes_per_session,
			max_guests_per_session = EXCLUDED.max_guests_per_session,
			service_radius_km = EXCLUDED.service_radius_km,
			max_sessions_per_day = EXCLUDED.max_sessions_per_day,
			updated_at = now()
	`, s.ChefID, s.PrepMinutes, s.CleanupMinutes, s.TravelBufferPercent, s.CookingEfficiency,
		s.MinNoticeHours, s.MaxDaysAhead, s.MaxDishesPerSession, s.MaxGuestsPerSession,
		s.ServiceRadiusKm, s.MaxSessionsPerDay)
	return err
}

func (r *ChefRepository) ResetTimeSettings(ctx context.Context, chefID string) (model.TimeSettings, error) {
	s := model.DefaultTimeSettings(chefID)
	if err := r.UpdateTimeSettings(ctx, s); err != nil {
		return model.TimeSettings{}, err
	}
	return s, nil
}

// Dishes resolves an explicit dish selection. Every requested id must exist
// and belong to the chef.
func (r *ChefRepository) Dishes(ctx context.Context, chefID string, dishIDs []string) ([]model.DishCookProfile, error) {
	if len(dishIDs) == 0 {
		return nil, fmt.Errorf("%w: no dishes selected", model.ErrInvalidSelection)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chef_id::text, name, cook_time_minutes, cook_group
		FROM chef_dishes
		WHERE chef_id = $1 AND id = ANY($2)
	`, chefID, dishIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes, err := scanDishes(rows)
	if err != nil {
		return nil, err
	}
	if len(dishes) != len(dishIDs) {
		return nil, fmt.Errorf("%w: %d of %d dishes unknown", model.ErrInvalidSelection, len(dishIDs)-len(dishes), len(dishIDs))
	}
	return dishes, nil
}

func (r *ChefRepository) MenuDishes(ctx context.Context, chefID, menuID string) ([]model.DishCookProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id::text, d.chef_id::text, d.name, d.cook_time_minutes, d.cook_group
		FROM menu_dishes md
		JOIN menus m ON m.id = md.menu_id
		JOIN chef_dishes d ON d.id = md.dish_id
		WHERE m.id = $1 AND m.chef_id = $2
		ORDER BY md.position
	`, menuID, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes, err := scanDishes(rows)
	if err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return nil, fmt.Errorf("%w: menu %s is empty or unknown", model.ErrInvalidSelection, menuID)
	}
	return dishes, nil
}

func (r *ChefRepository) UpsertDish(ctx context.Context, d *model.DishCookProfile) error {
	if d.CookTimeMinutes <= 0 || d.CookGroup < 1 {
		return fmt.Errorf("%w: dish needs positive cook time and group", model.ErrInvalidSelection)
	}
	if d.ID == "" {
		return r.pool.QueryRow(ctx, `
			INSERT INTO chef_dishes (chef_id, name, cook_time_minutes, cook_group)
			VALUES ($1, $2, $3, $4)
			RETURNING id::text
		`, d.ChefID, d.Name, d.CookTimeMinutes, d.CookGroup).Scan(&d.ID)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE chef_dishes
		SET name = $3, cook_time_minutes = $4, cook_group = $5, updated_at = now()
		WHERE id = $1 AND chef_id = $2
	`, d.ID, d.ChefID, d.Name, d.CookTimeMinutes, d.CookGroup)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChefRepository) ListDishes(ctx context.Context, chefID string) ([]model.DishCookProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chef_id::text, name, cook_time_minutes, cook_group
		FROM chef_dishes
		WHERE chef_id = $1
		ORDER BY name
	`, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDishes(rows)
}

func (r *ChefRepository) DeleteDish(ctx context.Context, chefID, dishID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM chef_dishes WHERE id = $1 AND chef_id = $2
	`, dishID, chefID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChefRepository) CreateMenu(ctx context.Context, m *model.Menu) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
		INSERT INTO menus (chef_id, name)
		VALUES ($1, $2)
		RETURNING id::text
	`, m.ChefID, m.Name).Scan(&m.ID); err != nil {
		return err
	}
	for i, dishID := range m.DishIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_dishes (menu_id, dish_id, position)
			VALUES ($1, $2, $3)
		`, m.ID, dishID, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ChefRepository) ListMenus(ctx context.Context, chefID string) ([]model.Menu, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.chef_id::text, m.name,
			COALESCE(array_agg(md.dish_id::text ORDER BY md.position) FILTER (WHERE md.dish_id IS NOT NULL), '{}')
		FROM menus m
		LEFT JOIN menu_dishes md ON md.menu_id = m.id
		WHERE m.chef_id = $1
		GROUP BY m.id, m.chef_id, m.name
		ORDER BY m.name
	`, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.ID, &m.ChefID, &m.Name, &m.DishIDs); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func scanDishes(rows pgx.Rows) ([]model.DishCookProfile, error) {
	var dishes []model.DishCookProfile
	for rows.Next() {
		var d model.DishCookProfile
		if err := rows.Scan(&d.ID, &d.ChefID, &d.Name, &d.CookTimeMinutes, &d.CookGroup); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}
