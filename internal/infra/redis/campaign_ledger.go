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

var _ repository.CampaignLedger = (*CampaignLedger)(nil)

// CampaignLedger implements the capacity-bounded, once-per-fingerprint
// promotion gate on Redis.
//
// Key layout:
//
//	campaign:count            global slot counter
//	campaign:used:<fp>        free-claim usage record (value = RFC3339 ts)
//	refund:used:<fp>          paid-refund usage record
//	feedback:<ts>:<fp>        append-only feedback payload
//	share:<ts>:<fp>           append-only share payload
type CampaignLedger struct {
	client   *Client
	capacity int
	countKey string
}

func NewCampaignLedger(client *Client, capacity int) *CampaignLedger {
	if capacity <= 0 {
		capacity = 100
	}
	return &CampaignLedger{client: client, capacity: capacity, countKey: "campaign:count"}
}

// luaReserve performs the usage gate and the bounded increment as a single
// atomic script. The two-step read/compare/write pattern this replaces could
// both double-redeem a fingerprint and overshoot the capacity under
// concurrent requests.
var luaReserve = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return "USED"
end
local c = tonumber(redis.call("GET", KEYS[2]) or "0")
if c >= tonumber(ARGV[2]) then
	return "ENDED"
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("INCR", KEYS[2])
return "OK"`)

// luaRelease compensates a Reserve: drops the usage record and decrements
// the counter, but only if the record actually exists.
var luaRelease = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return "NOOP"
end
redis.call("DEL", KEYS[1])
local c = tonumber(redis.call("GET", KEYS[2]) or "0")
if c > 0 then
	redis.call("DECR", KEYS[2])
end
return "OK"`)

func (l *CampaignLedger) usedKey(ns model.Namespace, fp string) string {
	return fmt.Sprintf("%s:used:%s", ns, fp)
}

func (l *CampaignLedger) Remaining(ctx context.Context) (int, error) {
	raw, err := l.client.Get(ctx, l.countKey)
	if err != nil {
		if IsNil(err) {
			return l.capacity, nil
		}
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(raw, "%d", &count); err != nil {
		return 0, fmt.Errorf("corrupt counter %q: %w", raw, err)
	}
	if count >= l.capacity {
		return 0, nil
	}
	return l.capacity - count, nil
}

func (l *CampaignLedger) Used(ctx context.Context, ns model.Namespace, fp string) (bool, error) {
	return l.client.Exists(ctx, l.usedKey(ns, fp))
}

func (l *CampaignLedger) Reserve(ctx context.Context, ns model.Namespace, fp string, now time.Time) error {
	res, err := luaReserve.Run(ctx, l.client.cli,
		[]string{l.usedKey(ns, fp), l.countKey},
		now.UTC().Format(time.RFC3339), l.capacity,
	).Result()
	if err != nil {
		return err
	}
	switch res {
	case "OK":
		return nil
	case "USED":
		return domain.ErrAlreadyUsed
	case "ENDED":
		return domain.ErrCampaignEnded
	default:
		return fmt.Errorf("unexpected reserve result %v", res)
	}
}

func (l *CampaignLedger) Release(ctx context.Context, ns model.Namespace, fp string) error {
	return luaRelease.Run(ctx, l.client.cli, []string{l.usedKey(ns, fp), l.countKey}).Err()
}

func (l *CampaignLedger) AppendRecord(ctx context.Context, rec *model.ActionRecord) error {
	key := fmt.Sprintf("%s:%d:%s", rec.Action, rec.CreatedAt.UnixMilli(), rec.Fingerprint)
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// SETNX keeps the records append-only even on a key collision.
	return l.client.cli.SetNX(ctx, key, data, 0).Err()
}
