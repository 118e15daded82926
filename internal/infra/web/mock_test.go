package web

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/adapter"
	"twinpersona/internal/infra/adapters/notify"
	"twinpersona/internal/usecase"

	"github.com/rs/zerolog"
)

type fakeLedger struct {
	mu       sync.Mutex
	capacity int
	count    int
	used     map[string]bool
}

func newFakeLedger(capacity int) *fakeLedger {
	return &fakeLedger{capacity: capacity, used: make(map[string]bool)}
}

func (f *fakeLedger) key(ns model.Namespace, fp string) string { return string(ns) + ":" + fp }

func (f *fakeLedger) Remaining(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r := f.capacity - f.count; r > 0 {
		return r, nil
	}
	return 0, nil
}

func (f *fakeLedger) Used(ctx context.Context, ns model.Namespace, fp string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.used[f.key(ns, fp)], nil
}

func (f *fakeLedger) Reserve(ctx context.Context, ns model.Namespace, fp string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.used[f.key(ns, fp)] {
		return domain.ErrAlreadyUsed
	}
	if f.count >= f.capacity {
		return domain.ErrCampaignEnded
	}
	f.used[f.key(ns, fp)] = true
	f.count++
	return nil
}

func (f *fakeLedger) Release(ctx context.Context, ns model.Namespace, fp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.used[f.key(ns, fp)] {
		delete(f.used, f.key(ns, fp))
		f.count--
	}
	return nil
}

func (f *fakeLedger) AppendRecord(ctx context.Context, rec *model.ActionRecord) error { return nil }

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*model.Coupon
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[string]*model.Coupon)}
}

func (f *fakeCouponRepo) Save(ctx context.Context, c *model.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.coupons[c.Code] = &cp
	return nil
}

func (f *fakeCouponRepo) Find(ctx context.Context, code string) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCouponRepo) MarkUsed(ctx context.Context, code string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[code]
	if !ok {
		return domain.ErrCouponNotFound
	}
	if c.Used {
		return domain.ErrCouponUsed
	}
	c.Used = true
	c.UsedAt = &now
	return nil
}

type fakeTokenRepo struct {
	mu       sync.Mutex
	byJTI    map[string]*model.AccessToken
	byIntent map[string]*model.AccessToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		byJTI:    make(map[string]*model.AccessToken),
		byIntent: make(map[string]*model.AccessToken),
	}
}

func (f *fakeTokenRepo) Save(ctx context.Context, t *model.AccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.byJTI[t.JTI] = &cp
	f.byIntent[t.PaymentIntentID] = &cp
	return nil
}

func (f *fakeTokenRepo) Find(ctx context.Context, jti string) (*model.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byJTI[jti]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTokenRepo) FindByIntent(ctx context.Context, intentID string) (*model.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byIntent[intentID]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTokenRepo) Touch(ctx context.Context, jti string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.byJTI[jti]; ok {
		t.Used = true
		t.UsedAt = &now
	}
	return nil
}

type fakeGateway struct {
	parseEvent adapter.WebhookEvent
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency, email string, meta map[string]string) (adapter.PaymentIntent, error) {
	return adapter.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: currency}, nil
}

func (f *fakeGateway) ParseWebhook(payload []byte, sig string) (adapter.WebhookEvent, error) {
	return f.parseEvent, nil
}

func (f *fakeGateway) Refund(ctx context.Context, intentID string, expected int64, meta map[string]string) (adapter.RefundResult, error) {
	return adapter.RefundResult{ID: "re_1", Amount: expected, RefundedAt: time.Now()}, nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(jti, intentID, email string, expiresAt time.Time) (string, error) {
	return "signed:" + jti, nil
}

func (fakeSigner) Verify(token string) (string, error) {
	jti, ok := strings.CutPrefix(token, "signed:")
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return jti, nil
}

type fakeTextGen struct {
	reply string
	err   error
}

func (f *fakeTextGen) Name() string { return "fake" }

func (f *fakeTextGen) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	return f.reply, f.err
}

type fakeImageGen struct {
	url string
	err error
}

func (f *fakeImageGen) Name() string { return "fake" }

func (f *fakeImageGen) Generate(ctx context.Context, prompt string) (string, error) {
	return f.url, f.err
}

type fakeLimiter struct {
	allow bool
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return f.allow, nil
}

type testEnv struct {
	server  *Server
	ledger  *fakeLedger
	coupons *fakeCouponRepo
	tokens  *fakeTokenRepo
	gateway *fakeGateway
}

func newTestServer(opts ...func(*testEnv)) *testEnv {
	logger := zerolog.Nop()
	env := &testEnv{
		ledger:  newFakeLedger(100),
		coupons: newFakeCouponRepo(),
		tokens:  newFakeTokenRepo(),
		gateway: &fakeGateway{},
	}
	for _, opt := range opts {
		opt(env)
	}

	notifier := notify.NewNoopNotifier()
	couponUC := usecase.NewCouponUseCase(env.coupons, &logger)
	campaignUC := usecase.NewCampaignUseCase(env.ledger, couponUC, nil, nil, notifier, &logger)
	paymentUC := usecase.NewPaymentUseCase(env.gateway, fakeSigner{}, env.tokens, env.ledger, nil, nil, notifier, &logger, model.PremiumPriceJPY, "jpy")
	counter := func(model, text string) int { return len(text) / 3 }
	adviceUC := usecase.NewAdviceUseCase(&fakeTextGen{err: errors.New("provider down")}, "gpt-4o-mini", 2048, counter, &logger)
	imageUC := usecase.NewImageUseCase(&fakeImageGen{url: "https://img.example/1.png"}, func(m, c string) string { return "data:ph" }, &logger)

	srv, err := NewServer(0, Deps{
		Quiz:            usecase.NewQuizUseCase(&logger),
		Campaign:        campaignUC,
		Coupons:         couponUC,
		Payments:        paymentUC,
		Advice:          adviceUC,
		Images:          imageUC,
		Limiter:         &fakeLimiter{allow: true},
		Logger:          &logger,
		CORSAllowOrigin: "*",
		RateLimitPerMin: 10,
	})
	if err != nil {
		panic(err)
	}
	env.server = srv
	return env
}
