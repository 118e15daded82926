package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/adapter"
)

// ledgerKey namespaces per-fingerprint usage the way the store does.
func ledgerKey(ns model.Namespace, fp string) string {
	return string(ns) + ":" + fp
}

type mockLedger struct {
	mu       sync.Mutex
	capacity int
	count    int
	used     map[string]bool
	records  []*model.ActionRecord
}

func newMockLedger(capacity int) *mockLedger {
	return &mockLedger{capacity: capacity, used: make(map[string]bool)}
}

func (m *mockLedger) Remaining(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.capacity - m.count; r > 0 {
		return r, nil
	}
	return 0, nil
}

func (m *mockLedger) Used(ctx context.Context, ns model.Namespace, fp string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used[ledgerKey(ns, fp)], nil
}

func (m *mockLedger) Reserve(ctx context.Context, ns model.Namespace, fp string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.used[ledgerKey(ns, fp)] {
		return domain.ErrAlreadyUsed
	}
	if m.count >= m.capacity {
		return domain.ErrCampaignEnded
	}
	m.used[ledgerKey(ns, fp)] = true
	m.count++
	return nil
}

func (m *mockLedger) Release(ctx context.Context, ns model.Namespace, fp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.used[ledgerKey(ns, fp)] {
		delete(m.used, ledgerKey(ns, fp))
		m.count--
	}
	return nil
}

func (m *mockLedger) AppendRecord(ctx context.Context, rec *model.ActionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

type mockCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*model.Coupon
	saveErr error
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{coupons: make(map[string]*model.Coupon)}
}

func (m *mockCouponRepo) Save(ctx context.Context, c *model.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *c
	m.coupons[c.Code] = &cp
	return nil
}

func (m *mockCouponRepo) Find(ctx context.Context, code string) (*model.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCouponRepo) MarkUsed(ctx context.Context, code string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[code]
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

type mockTokenRepo struct {
	mu       sync.Mutex
	byJTI    map[string]*model.AccessToken
	byIntent map[string]*model.AccessToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{
		byJTI:    make(map[string]*model.AccessToken),
		byIntent: make(map[string]*model.AccessToken),
	}
}

func (m *mockTokenRepo) Save(ctx context.Context, t *model.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.byJTI[t.JTI] = &cp
	m.byIntent[t.PaymentIntentID] = &cp
	return nil
}

func (m *mockTokenRepo) Find(ctx context.Context, jti string) (*model.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byJTI[jti]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	cp := *t
	return &cp, nil
}

func (m *mockTokenRepo) FindByIntent(ctx context.Context, intentID string) (*model.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byIntent[intentID]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	cp := *t
	return &cp, nil
}

func (m *mockTokenRepo) Touch(ctx context.Context, jti string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byJTI[jti]
	if !ok {
		return domain.ErrTokenInvalid
	}
	t.Used = true
	t.UsedAt = &now
	return nil
}

type mockGateway struct {
	mu         sync.Mutex
	intentErr  error
	refundErr  error
	parseEvent adapter.WebhookEvent
	parseErr   error
	refunds    []string
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency, email string, meta map[string]string) (adapter.PaymentIntent, error) {
	if m.intentErr != nil {
		return adapter.PaymentIntent{}, m.intentErr
	}
	return adapter.PaymentIntent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (m *mockGateway) ParseWebhook(payload []byte, sig string) (adapter.WebhookEvent, error) {
	if m.parseErr != nil {
		return adapter.WebhookEvent{}, m.parseErr
	}
	return m.parseEvent, nil
}

func (m *mockGateway) Refund(ctx context.Context, intentID string, expected int64, meta map[string]string) (adapter.RefundResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refundErr != nil {
		return adapter.RefundResult{}, m.refundErr
	}
	m.refunds = append(m.refunds, intentID)
	return adapter.RefundResult{ID: "re_test_1", Amount: expected, RefundedAt: time.Now()}, nil
}

// stubSigner issues transparent tokens so tests can assert on the JTI.
type stubSigner struct{}

func (stubSigner) Sign(jti, intentID, email string, expiresAt time.Time) (string, error) {
	return "signed:" + jti, nil
}

func (stubSigner) Verify(token string) (string, error) {
	jti, ok := strings.CutPrefix(token, "signed:")
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return jti, nil
}

type mockNotifier struct {
	mu        sync.Mutex
	exhausted int
	refunds   int
	rejected  []string
}

func (m *mockNotifier) CampaignExhausted(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exhausted++
}

func (m *mockNotifier) RefundIssued(ctx context.Context, intentID string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunds++
}

func (m *mockNotifier) WebhookRejected(ctx context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

type stubTextGen struct {
	reply string
	err   error
}

func (s *stubTextGen) Name() string { return "stub" }

func (s *stubTextGen) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	return s.reply, s.err
}

type stubImageGen struct {
	url string
	err error
}

func (s *stubImageGen) Name() string { return "stub" }

func (s *stubImageGen) Generate(ctx context.Context, prompt string) (string, error) {
	return s.url, s.err
}
