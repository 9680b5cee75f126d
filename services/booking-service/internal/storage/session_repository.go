package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chefbook-app/chefbook/libs/db"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/admission"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/outbox"
)

// SessionRepository owns the booking_sessions table. Writes go through
// WithChefLock so all mutations for one chef are serialized; the exclusion
// constraint on (chef_id, travel span) is the second line of defense.
type SessionRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

type IdempotencyRecord struct {
	ChefID          string
	IdempotencyKey  string
	SessionID       string
	StatusCode      int
	ResponsePayload []byte
}

func NewSessionRepository(pool *db.Pool, outboxRepo *outbox.Repository) *SessionRepository {
	return &SessionRepository{pool: pool, outbox: outboxRepo}
}

// WithChefLock runs fn inside a transaction holding the chef's advisory
// lock. Concurrent attempts for the same chef queue here, so each attempt
// validates against every session committed before it.
func (r *SessionRepository) WithChefLock(ctx context.Context, chefID string, fn func(tx admission.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, chefID); err != nil {
		return fmt.Errorf("acquire chef lock: %w", err)
	}
	if err := fn(&sessionTx{tx: tx, outbox: r.outbox}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// WithChefLockTx is WithChefLock over a transaction the caller already
// opened. The caller commits or rolls back, so work it stages around fn
// (an idempotency record) lands atomically with the session mutation.
func (r *SessionRepository) WithChefLockTx(ctx context.Context, tx pgx.Tx, chefID string, fn func(tx admission.Tx) error) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, chefID); err != nil {
		return fmt.Errorf("acquire chef lock: %w", err)
	}
	return fn(&sessionTx{tx: tx, outbox: r.outbox})
}

func (r *SessionRepository) CommittedSessions(ctx context.Context, chefID string, from, to time.Time) ([]model.CommittedSession, error) {
	return querySessions(ctx, r.pool, chefID, from, to)
}

func (r *SessionRepository) GetSession(ctx context.Context, chefID, sessionID string) (model.CommittedSession, error) {
	var s model.CommittedSession
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, chef_id::text, customer_id, date, travel_start, start_time, end_time, status, cancelled_at, created_at
		FROM booking_sessions
		WHERE id = $1 AND chef_id = $2
	`, sessionID, chefID).Scan(&s.ID, &s.ChefID, &s.CustomerID, &s.Date, &s.TravelStart, &s.Start, &s.End, &s.Status, &s.CancelledAt, &s.CreatedAt)
	return s, err
}

func (r *SessionRepository) ListByChef(ctx context.Context, chefID string, limit int) ([]model.CommittedSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chef_id::text, customer_id, date, travel_start, start_time, end_time, status, cancelled_at, created_at
		FROM booking_sessions
		WHERE chef_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, chefID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

// LockIdempotencyKey claims the (chef, key) pair under FOR UPDATE. The
// second return reports whether the key already existed: a replayed request
// gets the stored response instead of a second booking attempt.
func (r *SessionRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, chefID, key string) (IdempotencyRecord, bool, error) {
	rec, err := selectIdempotencyForUpdate(ctx, tx, chefID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO booking_idempotency_keys (chef_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (chef_id, idempotency_key) DO NOTHING
	`, chefID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = selectIdempotencyForUpdate(ctx, tx, chefID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *SessionRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, chefID, key, sessionID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE booking_idempotency_keys
		SET session_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE chef_id = $1 AND idempotency_key = $2
	`, chefID, key, nullableID(sessionID), statusCode, response)
	return err
}

func (r *SessionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

type sessionTx struct {
	tx     pgx.Tx
	outbox *outbox.Repository
}

func (t *sessionTx) CommittedSessions(ctx context.Context, chefID string, from, to time.Time) ([]model.CommittedSession, error) {
	return querySessions(ctx, t.tx, chefID, from, to)
}

func (t *sessionTx) InsertSession(ctx context.Context, s *model.CommittedSession) error {
	return t.tx.QueryRow(ctx, `
		INSERT INTO booking_sessions (chef_id, customer_id, date, travel_start, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at
	`, s.ChefID, s.CustomerID, s.Date, s.TravelStart, s.Start, s.End, s.Status).Scan(&s.ID, &s.CreatedAt)
}

func (t *sessionTx) CancelSession(ctx context.Context, chefID, sessionID, reason string) (model.CommittedSession, error) {
	var s model.CommittedSession
	err := t.tx.QueryRow(ctx, `
		UPDATE booking_sessions
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3
		WHERE id = $1 AND chef_id = $2 AND status = 'committed'
		RETURNING id::text, chef_id::text, customer_id, date, travel_start, start_time, end_time, status, cancelled_at, created_at
	`, sessionID, chefID, reason).Scan(&s.ID, &s.ChefID, &s.CustomerID, &s.Date, &s.TravelStart, &s.Start, &s.End, &s.Status, &s.CancelledAt, &s.CreatedAt)
	return s, err
}

func (t *sessionTx) AppendEvent(ctx context.Context, evt outbox.Event) error {
	return t.outbox.Insert(ctx, t.tx, evt)
}

// IsConflict reports whether the exclusion constraint on overlapping
// sessions rejected an insert.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func querySessions(ctx context.Context, q querier, chefID string, from, to time.Time) ([]model.CommittedSession, error) {
	rows, err := q.Query(ctx, `
		SELECT id::text, chef_id::text, customer_id, date, travel_start, start_time, end_time, status, cancelled_at, created_at
		FROM booking_sessions
		WHERE chef_id = $1
			AND status = 'committed'
			AND start_time >= $2
			AND start_time < $3
		ORDER BY start_time
	`, chefID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]model.CommittedSession, error) {
	var sessions []model.CommittedSession
	for rows.Next() {
		var s model.CommittedSession
		if err := rows.Scan(&s.ID, &s.ChefID, &s.CustomerID, &s.Date, &s.TravelStart, &s.Start, &s.End, &s.Status, &s.CancelledAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, chefID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT chef_id::text,
			idempotency_key,
			COALESCE(session_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM booking_idempotency_keys
		WHERE chef_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, chefID, key).Scan(
		&rec.ChefID,
		&rec.IdempotencyKey,
		&rec.SessionID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
