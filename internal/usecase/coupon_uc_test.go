package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"twinpersona/internal/domain"

	"github.com/rs/zerolog"
)

func newTestCouponUC(repo *mockCouponRepo) *CouponUseCase {
	logger := zerolog.Nop()
	return NewCouponUseCase(repo, &logger)
}

func TestCouponIssue(t *testing.T) {
	t.Parallel()

	repo := newMockCouponRepo()
	uc := newTestCouponUC(repo)

	c, err := uc.Issue(context.Background(), "fp-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(c.Code) != couponCodeLen {
		t.Fatalf("code length = %d, want %d", len(c.Code), couponCodeLen)
	}
	for _, r := range c.Code {
		if !strings.ContainsRune(couponAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", c.Code, r)
		}
	}
	if c.Fingerprint != "fp-1" || c.Used {
		t.Fatalf("unexpected coupon state: %+v", c)
	}
	if _, err := repo.Find(context.Background(), c.Code); err != nil {
		t.Fatalf("issued coupon not stored: %v", err)
	}
}

func TestCouponValidate(t *testing.T) {
	t.Parallel()

	repo := newMockCouponRepo()
	uc := newTestCouponUC(repo)

	c, err := uc.Issue(context.Background(), "fp-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := uc.Validate(context.Background(), c.Code)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !got.Used || got.UsedAt == nil {
		t.Fatalf("validated coupon not marked used: %+v", got)
	}
}

func TestCouponValidateIsSingleUse(t *testing.T) {
	t.Parallel()

	repo := newMockCouponRepo()
	uc := newTestCouponUC(repo)

	c, _ := uc.Issue(context.Background(), "fp-1")
	if _, err := uc.Validate(context.Background(), c.Code); err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	if _, err := uc.Validate(context.Background(), c.Code); !errors.Is(err, domain.ErrCouponUsed) {
		t.Fatalf("second Validate error = %v, want ErrCouponUsed", err)
	}
}

func TestCouponValidateExpiry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{"just inside the window", 23*time.Hour + 59*time.Minute, nil},
		{"past the window", 25 * time.Hour, domain.ErrCouponExpired},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockCouponRepo()
			uc := newTestCouponUC(repo)

			issuedAt := time.Now()
			uc.now = func() time.Time { return issuedAt }
			c, err := uc.Issue(context.Background(), "fp-1")
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}

			uc.now = func() time.Time { return issuedAt.Add(tc.elapsed) }
			_, err = uc.Validate(context.Background(), c.Code)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCouponValidateRejectsBadInput(t *testing.T) {
	t.Parallel()

	uc := newTestCouponUC(newMockCouponRepo())

	if _, err := uc.Validate(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank code error = %v, want ErrInvalidArgument", err)
	}
	if _, err := uc.Validate(context.Background(), "NOPE1234"); !errors.Is(err, domain.ErrCouponNotFound) {
		t.Fatalf("unknown code error = %v, want ErrCouponNotFound", err)
	}
}

func TestCouponValidateNormalizesCase(t *testing.T) {
	t.Parallel()

	repo := newMockCouponRepo()
	uc := newTestCouponUC(repo)

	c, _ := uc.Issue(context.Background(), "fp-1")
	if _, err := uc.Validate(context.Background(), "  "+strings.ToLower(c.Code)+" "); err != nil {
		t.Fatalf("Validate with lowercase input: %v", err)
	}
}
