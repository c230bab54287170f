package repository

import (
	"context"
	"fmt"
	"time"
)

// TryLock acquires the per-location refresh lock so concurrent requests for
// the same region never trigger duplicate parses. The lock expires on its own
// in case a worker dies holding it.
func (r *Repository) TryLock(ctx context.Context, locationID string) (func(), bool, error) {
	key := fmt.Sprintf("schedule_refresh_lock_%s", locationID)
	expiration := time.Duration(r.cfg.Redis.LockExpiration) * time.Second

	lockCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	acquired, err := r.redisClient.SetNX(lockCtx, key, "1", expiration).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()
		_ = r.redisClient.Del(releaseCtx, key).Err()
	}
	return release, true, nil
}
