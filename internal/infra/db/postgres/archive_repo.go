package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

const uniqueViolationCode = "23505"

// ArchiveRepo mirrors ledger activity into Postgres for analytics and
// manual reconciliation. Writes arrive through the worker pool; duplicate
// keys from retried tasks are swallowed.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS action_records (
//	    id          TEXT PRIMARY KEY,
//	    action      TEXT NOT NULL,
//	    fingerprint TEXT NOT NULL,
//	    intent_id   TEXT,
//	    payload     JSONB,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS payments (
//	    intent_id  TEXT NOT NULL,
//	    email      TEXT,
//	    amount     BIGINT NOT NULL,
//	    currency   TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (intent_id, status)
//	);
type ArchiveRepo struct {
	pool *pgxpool.Pool
}

func NewArchiveRepo(pool *pgxpool.Pool) *ArchiveRepo {
	return &ArchiveRepo{pool: pool}
}

func (r *ArchiveRepo) SaveRedemption(ctx context.Context, rec *model.ActionRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO action_records (id, action, fingerprint, intent_id, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, string(rec.Action), rec.Fingerprint, rec.PaymentIntentID, payload, rec.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert action record: %w", err)
	}
	return nil
}

func (r *ArchiveRepo) SavePayment(ctx context.Context, p *model.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (intent_id, email, amount, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.IntentID, p.Email, p.Amount, p.Currency, string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
