package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/repository"
)

var _ repository.AccessTokenRepository = (*TokenRepo)(nil)

// TokenRepo keeps premium access tokens in the shared store so a token
// minted by the webhook on one instance is visible to every other instance.
// The TTL mirrors the token's own expiry.
type TokenRepo struct {
	client *Client
}

func NewTokenRepo(client *Client) *TokenRepo {
	return &TokenRepo{client: client}
}

func tokenKey(jti string) string { return fmt.Sprintf("premium:token:%s", jti) }

func intentKey(pid string) string { return fmt.Sprintf("premium:intent:%s", pid) }

func (r *TokenRepo) Save(ctx context.Context, t *model.AccessToken) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrTokenInvalid
	}
	if err := r.client.Set(ctx, tokenKey(t.JTI), data, ttl); err != nil {
		return err
	}
	// secondary index so the payer can claim the token by intent id
	return r.client.Set(ctx, intentKey(t.PaymentIntentID), t.JTI, ttl)
}

func (r *TokenRepo) FindByIntent(ctx context.Context, paymentIntentID string) (*model.AccessToken, error) {
	jti, err := r.client.Get(ctx, intentKey(paymentIntentID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return r.Find(ctx, jti)
}

func (r *TokenRepo) Find(ctx context.Context, jti string) (*model.AccessToken, error) {
	raw, err := r.client.Get(ctx, tokenKey(jti))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	var t model.AccessToken
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepo) Touch(ctx context.Context, jti string, now time.Time) error {
	t, err := r.Find(ctx, jti)
	if err != nil {
		return err
	}
	if t.Used {
		return nil
	}
	t.Used = true
	ts := now.UTC()
	t.UsedAt = &ts
	return r.Save(ctx, t)
}
