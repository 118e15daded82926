package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

// CouponRepo stores coupons as JSON under coupon:<code> with the 24-hour
// store-enforced TTL.
type CouponRepo struct {
	client *Client
}

func NewCouponRepo(client *Client) *CouponRepo {
	return &CouponRepo{client: client}
}

func couponKey(code string) string { return fmt.Sprintf("coupon:%s", code) }

// luaMarkUsed flips the used flag exactly once, preserving the remaining
// TTL. Doing the check and the write store-side closes the validate race
// where two concurrent requests both read used=false.
var luaMarkUsed = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
	return "NOTFOUND"
end
local c = cjson.decode(raw)
if c.used then
	return "USED"
end
c.used = true
c.used_at = ARGV[1]
local ttl = redis.call("TTL", KEYS[1])
if ttl > 0 then
	redis.call("SET", KEYS[1], cjson.encode(c), "EX", ttl)
else
	redis.call("SET", KEYS[1], cjson.encode(c))
end
return "OK"`)

func (r *CouponRepo) Save(ctx context.Context, c *model.Coupon) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, couponKey(c.Code), data, model.CouponTTL)
}

func (r *CouponRepo) Find(ctx context.Context, code string) (*model.Coupon, error) {
	raw, err := r.client.Get(ctx, couponKey(code))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, err
	}
	var c model.Coupon
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepo) MarkUsed(ctx context.Context, code string, now time.Time) error {
	res, err := luaMarkUsed.Run(ctx, r.client.cli,
		[]string{couponKey(code)},
		now.UTC().Format(time.RFC3339),
	).Result()
	if err != nil {
		return err
	}
	switch res {
	case "OK":
		return nil
	case "NOTFOUND":
		return domain.ErrCouponNotFound
	case "USED":
		return domain.ErrCouponUsed
	default:
		return fmt.Errorf("unexpected mark-used result %v", res)
	}
}
