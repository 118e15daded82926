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

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// PaymentUseCase owns the paid premium path: intent creation, webhook-driven
// token minting, token claim/verify, and the refund promotion.
//
// Access tokens live in the shared store, never in process memory, so any
// instance can verify a token minted by another.
type PaymentUseCase struct {
	gateway  adapter.PaymentGateway
	signer   adapter.TokenSigner
	tokens   repository.AccessTokenRepository
	ledger   repository.CampaignLedger
	archive  repository.ArchiveRepository // nil when no archive is configured
	pool     *worker.Pool                 // nil when archive is nil
	notifier adapter.Notifier
	logger   *zerolog.Logger
	amount   int64
	currency string
	now      func() time.Time
}

func NewPaymentUseCase(
	gateway adapter.PaymentGateway,
	signer adapter.TokenSigner,
	tokens repository.AccessTokenRepository,
	ledger repository.CampaignLedger,
	archive repository.ArchiveRepository,
	pool *worker.Pool,
	notifier adapter.Notifier,
	logger *zerolog.Logger,
	amount int64,
	currency string,
) *PaymentUseCase {
	return &PaymentUseCase{
		gateway:  gateway,
		signer:   signer,
		tokens:   tokens,
		ledger:   ledger,
		archive:  archive,
		pool:     pool,
		notifier: notifier,
		logger:   logger,
		amount:   amount,
		currency: currency,
		now:      time.Now,
	}
}

// CreateIntent opens a fixed-amount charge with the provider and returns the
// client secret the browser needs to confirm it.
func (uc *PaymentUseCase) CreateIntent(ctx context.Context, email string) (adapter.PaymentIntent, error) {
	intent, err := uc.gateway.CreateIntent(ctx, uc.amount, uc.currency, email, map[string]string{
		"product": "twinpersona-premium",
	})
	if err != nil {
		metrics.IncPayment("create_failed")
		return adapter.PaymentIntent{}, fmt.Errorf("create payment intent: %w", err)
	}
	metrics.IncPayment(string(model.PaymentStatusCreated))
	uc.archivePayment(&model.Payment{
		IntentID:  intent.ID,
		Email:     email,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
		Status:    model.PaymentStatusCreated,
		CreatedAt: uc.now(),
		UpdatedAt: uc.now(),
	})
	uc.logger.Info().Str("intent", intent.ID).Msg("payment intent created")
	return intent, nil
}

// HandleWebhook processes one provider delivery. A succeeded event mints the
// premium access token; re-deliveries of the same intent are no-ops.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	ev, err := uc.gateway.ParseWebhook(payload, signatureHeader)
	if err != nil {
		metrics.IncWebhookEvent("rejected")
		uc.notifier.WebhookRejected(ctx, err.Error())
		return err
	}

	switch ev.Type {
	case adapter.EventPaymentSucceeded:
		return uc.mintToken(ctx, ev)
	case adapter.EventPaymentFailed:
		metrics.IncWebhookEvent("ok")
		metrics.IncPayment(string(model.PaymentStatusFailed))
		uc.logger.Warn().Str("intent", ev.PaymentIntentID).Msg("payment failed")
		return nil
	default:
		metrics.IncWebhookEvent("ignored")
		return nil
	}
}

func (uc *PaymentUseCase) mintToken(ctx context.Context, ev adapter.WebhookEvent) error {
	if _, err := uc.tokens.FindByIntent(ctx, ev.PaymentIntentID); err == nil {
		metrics.IncWebhookEvent("duplicate")
		return nil
	}

	now := uc.now()
	token := &model.AccessToken{
		JTI:             uuid.NewString(),
		PaymentIntentID: ev.PaymentIntentID,
		Email:           ev.Email,
		CreatedAt:       now,
		ExpiresAt:       now.Add(model.AccessTokenTTL),
	}
	if err := uc.tokens.Save(ctx, token); err != nil {
		metrics.IncWebhookEvent("error")
		return fmt.Errorf("save access token: %w", err)
	}

	metrics.IncWebhookEvent("ok")
	metrics.IncPayment(string(model.PaymentStatusSucceeded))
	uc.archivePayment(&model.Payment{
		IntentID:  ev.PaymentIntentID,
		Email:     ev.Email,
		Amount:    ev.Amount,
		Currency:  uc.currency,
		Status:    model.PaymentStatusSucceeded,
		CreatedAt: now,
		UpdatedAt: now,
	})
	uc.logger.Info().Str("intent", ev.PaymentIntentID).Msg("premium token minted")
	return nil
}

// ClaimToken exchanges a confirmed payment intent for the signed premium
// token. Until the webhook lands, this returns ErrPaymentNotCompleted and
// the client keeps polling.
func (uc *PaymentUseCase) ClaimToken(ctx context.Context, paymentIntentID string) (string, error) {
	if paymentIntentID == "" {
		return "", fmt.Errorf("%w: empty payment intent id", domain.ErrInvalidArgument)
	}
	token, err := uc.tokens.FindByIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return "", domain.ErrPaymentNotCompleted
		}
		return "", err
	}
	return uc.signer.Sign(token.JTI, token.PaymentIntentID, token.Email, token.ExpiresAt)
}

// VerifyToken checks a signed premium token against the shared store.
// Verification does not consume the token; it stays valid until expiry.
func (uc *PaymentUseCase) VerifyToken(ctx context.Context, signed string) (*model.AccessToken, error) {
	jti, err := uc.signer.Verify(signed)
	if err != nil {
		return nil, err
	}
	token, err := uc.tokens.Find(ctx, jti)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if now.After(token.ExpiresAt) {
		return nil, domain.ErrTokenInvalid
	}
	if !token.Used {
		if err := uc.tokens.Touch(ctx, jti, now); err != nil {
			uc.logger.Warn().Err(err).Str("jti", jti).Msg("touch access token")
		}
	}
	return token, nil
}

// Refund returns the premium charge through the shared campaign pool. The
// slot is reserved before money moves; a gateway failure releases it so the
// user keeps their eligibility.
func (uc *PaymentUseCase) Refund(ctx context.Context, fingerprint, paymentIntentID string) (adapter.RefundResult, error) {
	if paymentIntentID == "" {
		return adapter.RefundResult{}, fmt.Errorf("%w: empty payment intent id", domain.ErrInvalidArgument)
	}

	now := uc.now()
	if err := uc.ledger.Reserve(ctx, model.NamespaceRefund, fingerprint, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyUsed):
			metrics.IncRefund("already_used")
		case errors.Is(err, domain.ErrCampaignEnded):
			metrics.IncRefund("ended")
		}
		return adapter.RefundResult{}, err
	}

	result, err := uc.gateway.Refund(ctx, paymentIntentID, uc.amount, map[string]string{
		"fingerprint": fingerprint,
	})
	if err != nil {
		if relErr := uc.ledger.Release(ctx, model.NamespaceRefund, fingerprint); relErr != nil {
			uc.logger.Error().Err(relErr).Str("fingerprint", fingerprint).Msg("release after failed refund")
		}
		metrics.IncRefund("failed")
		return adapter.RefundResult{}, err
	}

	rec := &model.ActionRecord{
		ID:              ulid.Make().String(),
		Action:          model.ActionRefund,
		Fingerprint:     fingerprint,
		PaymentIntentID: paymentIntentID,
		CreatedAt:       now,
	}
	if recErr := uc.ledger.AppendRecord(ctx, rec); recErr != nil {
		uc.logger.Warn().Err(recErr).Str("intent", paymentIntentID).Msg("append refund record")
	}
	uc.archiveRecord(rec)
	uc.archivePayment(&model.Payment{
		IntentID:  paymentIntentID,
		Amount:    result.Amount,
		Currency:  uc.currency,
		Status:    model.PaymentStatusRefunded,
		CreatedAt: now,
		UpdatedAt: now,
	})

	remaining, remErr := uc.ledger.Remaining(ctx)
	if remErr == nil {
		metrics.SetCampaignRemaining(remaining)
		if remaining == 0 {
			uc.notifier.CampaignExhausted(ctx)
		}
	}

	metrics.IncRefund("ok")
	metrics.IncPayment(string(model.PaymentStatusRefunded))
	uc.notifier.RefundIssued(ctx, paymentIntentID, result.Amount)
	uc.logger.Info().
		Str("intent", paymentIntentID).
		Int64("amount", result.Amount).
		Msg("refund issued")
	return result, nil
}

func (uc *PaymentUseCase) archivePayment(p *model.Payment) {
	if uc.archive == nil || uc.pool == nil {
		return
	}
	if err := uc.pool.Submit(func(ctx context.Context) error {
		return uc.archive.SavePayment(ctx, p)
	}); err != nil {
		uc.logger.Warn().Err(err).Msg("archive submit")
	}
}

func (uc *PaymentUseCase) archiveRecord(rec *model.ActionRecord) {
	if uc.archive == nil || uc.pool == nil {
		return
	}
	if err := uc.pool.Submit(func(ctx context.Context) error {
		return uc.archive.SaveRedemption(ctx, rec)
	}); err != nil {
		uc.logger.Warn().Err(err).Msg("archive submit")
	}
}
