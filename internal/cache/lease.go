package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only while it still carries the caller's token,
// so an expired-and-reacquired lease is never released by its previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TryLock takes key for ttl if nobody holds it. Without a reachable Redis the
// lease is reported as acquired: callers must not depend on it for correctness.
func (c *Client) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return true, err
	}
	return ok, nil
}

// Unlock releases key if token still owns it.
func (c *Client) Unlock(ctx context.Context, key, token string) error {
	if !c.Enabled() {
		return nil
	}
	return releaseScript.Run(ctx, c.client, []string{key}, token).Err()
}
