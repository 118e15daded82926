package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/repository"
	"twinpersona/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const couponCodeLen = 8

// Ambiguous glyphs (0/O, 1/I) are excluded; codes are read back by humans.
const couponAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CouponUseCase mints and validates the single-use premium-unlock coupons.
type CouponUseCase struct {
	coupons repository.CouponRepository
	logger  *zerolog.Logger
	now     func() time.Time
}

func NewCouponUseCase(coupons repository.CouponRepository, logger *zerolog.Logger) *CouponUseCase {
	return &CouponUseCase{
		coupons: coupons,
		logger:  logger,
		now:     time.Now,
	}
}

// Issue mints a fresh coupon bound to the redeeming fingerprint. The store
// TTL starts now; the code stays valid for model.CouponTTL.
func (uc *CouponUseCase) Issue(ctx context.Context, fingerprint string) (*model.Coupon, error) {
	c := &model.Coupon{
		Code:        newCouponCode(),
		Fingerprint: fingerprint,
		CreatedAt:   uc.now(),
	}
	if err := uc.coupons.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save coupon: %w", err)
	}
	metrics.IncCouponIssued()
	uc.logger.Info().Str("coupon", c.Code).Msg("coupon issued")
	return c, nil
}

// Validate consumes a coupon. The used flag flips atomically in the store,
// so two concurrent validations of the same code cannot both succeed.
func (uc *CouponUseCase) Validate(ctx context.Context, code string) (*model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: empty coupon code", domain.ErrInvalidArgument)
	}

	c, err := uc.coupons.Find(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrCouponNotFound) {
			metrics.IncCouponValidated("not_found")
		}
		return nil, err
	}

	now := uc.now()
	switch {
	case c.Used:
		metrics.IncCouponValidated("used")
		return nil, domain.ErrCouponUsed
	case c.Expired(now):
		metrics.IncCouponValidated("expired")
		return nil, domain.ErrCouponExpired
	}

	if err := uc.coupons.MarkUsed(ctx, code, now); err != nil {
		if errors.Is(err, domain.ErrCouponUsed) {
			metrics.IncCouponValidated("used")
		}
		return nil, err
	}

	c.Used = true
	c.UsedAt = &now
	metrics.IncCouponValidated("ok")
	uc.logger.Info().Str("coupon", code).Msg("coupon redeemed")
	return c, nil
}

func newCouponCode() string {
	b := make([]byte, couponCodeLen)
	for i := range b {
		b[i] = couponAlphabet[rand.IntN(len(couponAlphabet))]
	}
	return string(b)
}
