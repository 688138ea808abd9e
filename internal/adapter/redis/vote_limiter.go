package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pscheid92/namepulse/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// tryVoteScript atomically checks and records a voter's last vote time.
// The stored value is the caller's clock in ms, so cooldown math follows the
// injected clock; PX only bounds how long idle keys linger.
// KEYS: [1]=voter key. ARGV: [1]=now_ms, [2]=cooldown_ms.
// Returns 0 when allowed, otherwise the remaining wait in ms.
var tryVoteScript = goredis.NewScript(`
local now = tonumber(ARGV[1])
local cooldown = tonumber(ARGV[2])
local last = tonumber(redis.call('GET', KEYS[1]))
if last then
  local elapsed = now - last
  if elapsed < cooldown then
    return math.min(cooldown, cooldown - elapsed)
  end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', cooldown)
return 0
`)

// VoteLimiter keeps per-voter cooldowns in Redis so they survive across instances.
type VoteLimiter struct {
	rdb      *goredis.Client
	cooldown time.Duration
}

var _ domain.VoteLimiter = (*VoteLimiter)(nil)

func NewVoteLimiter(rdb *goredis.Client, cooldown time.Duration) *VoteLimiter {
	return &VoteLimiter{rdb: rdb, cooldown: cooldown}
}

func (l *VoteLimiter) TryVote(ctx context.Context, voterKey string, now time.Time) error {
	waitMs, err := tryVoteScript.Run(ctx, l.rdb, []string{voteLimitKey(voterKey)},
		now.UnixMilli(),
		l.cooldown.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("vote limit script failed: %w", err)
	}

	if waitMs > 0 {
		return &domain.RateLimitedError{RetryAfter: time.Duration(waitMs) * time.Millisecond}
	}
	return nil
}

func voteLimitKey(voterKey string) string {
	return "vote_limit:" + voterKey
}
