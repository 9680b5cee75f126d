package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chefbook-app/chefbook/libs/db"
	"github.com/chefbook-app/chefbook/services/chef-service/internal/model"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *Repository) CreateChef(ctx context.Context, c model.ChefAccount) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chef_accounts (id, name, email, bio, status, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, c.Name, c.Email, c.Bio, model.StatusPending, c.Lat, c.Lng)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetChef(ctx context.Context, id string) (model.ChefAccount, error) {
	var c model.ChefAccount
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, COALESCE(bio, ''), status, lat, lng, created_at, updated_at
		FROM chef_accounts
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Bio, &c.Status, &c.Lat, &c.Lng, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repository) ListChefs(ctx context.Context, status string, limit int) ([]model.ChefAccount, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, email, COALESCE(bio, ''), status, lat, lng, created_at, updated_at
		FROM chef_accounts
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChefAccount
	for rows.Next() {
		var c model.ChefAccount
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Bio, &c.Status, &c.Lat, &c.Lng, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetStatus transitions the chef inside the caller's transaction so the
// status change and its outbox event commit together.
func (r *Repository) SetStatus(ctx context.Context, tx pgx.Tx, id, status string) (model.ChefAccount, error) {
	var c model.ChefAccount
	err := tx.QueryRow(ctx, `
		UPDATE chef_accounts
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id::text, name, email, COALESCE(bio, ''), status, lat, lng, created_at, updated_at
	`, id, status).Scan(&c.ID, &c.Name, &c.Email, &c.Bio, &c.Status, &c.Lat, &c.Lng, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE chef_accounts
		SET lat = $2, lng = $3, updated_at = now()
		WHERE id = $1
	`, id, lat, lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
