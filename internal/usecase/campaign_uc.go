package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/adapter"
	"twinpersona/internal/domain/ports/repository"
	"twinpersona/internal/infra/metrics"
	"twinpersona/internal/infra/worker"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// CampaignUseCase runs the capacity-limited free-unlock promotion: a user
// performs a qualifying action (share or feedback), claims one of the
// remaining slots, and receives a single-use coupon.
type CampaignUseCase struct {
	ledger   repository.CampaignLedger
	coupons  *CouponUseCase
	archive  repository.ArchiveRepository // nil when no archive is configured
	pool     *worker.Pool                 // nil when archive is nil
	notifier adapter.Notifier
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewCampaignUseCase(
	ledger repository.CampaignLedger,
	coupons *CouponUseCase,
	archive repository.ArchiveRepository,
	pool *worker.Pool,
	notifier adapter.Notifier,
	logger *zerolog.Logger,
) *CampaignUseCase {
	return &CampaignUseCase{
		ledger:   ledger,
		coupons:  coupons,
		archive:  archive,
		pool:     pool,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Status returns the campaign snapshot for one fingerprint.
func (uc *CampaignUseCase) Status(ctx context.Context, fingerprint string) (*model.CampaignStatus, error) {
	remaining, err := uc.ledger.Remaining(ctx)
	if err != nil {
		return nil, fmt.Errorf("campaign remaining: %w", err)
	}
	used, err := uc.ledger.Used(ctx, model.NamespaceCampaign, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("campaign used: %w", err)
	}
	metrics.SetCampaignRemaining(remaining)
	return &model.CampaignStatus{
		Active:       remaining > 0,
		Remaining:    remaining,
		UserEligible: !used,
	}, nil
}

// Redeem claims a campaign slot and mints a coupon. The slot reservation is
// a single atomic store operation; if coupon minting fails afterwards the
// slot is released so the user can retry.
func (uc *CampaignUseCase) Redeem(ctx context.Context, fingerprint string, action model.Action, payload any) (*model.Coupon, error) {
	if err := validateActionPayload(action, payload); err != nil {
		metrics.IncRedemption(string(model.NamespaceCampaign), "invalid")
		return nil, err
	}

	now := uc.now()
	if err := uc.ledger.Reserve(ctx, model.NamespaceCampaign, fingerprint, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyUsed):
			metrics.IncRedemption(string(model.NamespaceCampaign), "already_used")
		case errors.Is(err, domain.ErrCampaignEnded):
			metrics.IncRedemption(string(model.NamespaceCampaign), "ended")
		}
		return nil, err
	}

	coupon, err := uc.coupons.Issue(ctx, fingerprint)
	if err != nil {
		if relErr := uc.ledger.Release(ctx, model.NamespaceCampaign, fingerprint); relErr != nil {
			uc.logger.Error().Err(relErr).Str("fingerprint", fingerprint).Msg("release after failed coupon issue")
		}
		metrics.IncRedemption(string(model.NamespaceCampaign), "error")
		return nil, err
	}

	rec := &model.ActionRecord{
		ID:          ulid.Make().String(),
		Action:      action,
		Fingerprint: fingerprint,
		Payload:     payload,
		CreatedAt:   now,
	}
	// The coupon is already issued; record writes are best-effort from here.
	if err := uc.ledger.AppendRecord(ctx, rec); err != nil {
		uc.logger.Warn().Err(err).Str("action", string(action)).Msg("append action record")
	}
	uc.archiveRecord(rec)

	remaining, err := uc.ledger.Remaining(ctx)
	if err == nil {
		metrics.SetCampaignRemaining(remaining)
		if remaining == 0 {
			uc.notifier.CampaignExhausted(ctx)
		}
	}

	metrics.IncRedemption(string(model.NamespaceCampaign), "ok")
	uc.logger.Info().
		Str("action", string(action)).
		Str("fingerprint", fingerprint).
		Msg("campaign slot redeemed")
	return coupon, nil
}

func (uc *CampaignUseCase) archiveRecord(rec *model.ActionRecord) {
	if uc.archive == nil || uc.pool == nil {
		return
	}
	if err := uc.pool.Submit(func(ctx context.Context) error {
		return uc.archive.SaveRedemption(ctx, rec)
	}); err != nil {
		uc.logger.Warn().Err(err).Msg("archive submit")
	}
}

func validateActionPayload(action model.Action, payload any) error {
	switch action {
	case model.ActionFeedback:
		fb, ok := payload.(model.FeedbackPayload)
		if !ok || fb.Rating < 1 || fb.Rating > 5 {
			return fmt.Errorf("%w: feedback rating must be 1-5", domain.ErrInvalidArgument)
		}
	case model.ActionShare:
		sp, ok := payload.(model.SharePayload)
		if !ok || sp.Platform == "" {
			return fmt.Errorf("%w: share platform required", domain.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidArgument, action)
	}
	return nil
}
