package repository

import (
	"context"

	"twinpersona/internal/domain/model"
)

// ArchiveRepository is the optional durable store behind the Redis ledger.
// It exists for analytics and manual reconciliation; the request path never
// depends on it and writes go through the worker pool.
type ArchiveRepository interface {
	SaveRedemption(ctx context.Context, rec *model.ActionRecord) error
	SavePayment(ctx context.Context, p *model.Payment) error
}
