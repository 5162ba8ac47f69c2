package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/bsm/redislock"
)

// AcquireLock obtains a short-lived distributed lock and returns its release
// function. Callers must defer the release.
func AcquireLock(ctx context.Context, lockType string, resourceId int, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		config.LogError(logger, moduleName, functionName, "Redis lock not initialized", resourceId, errors.New("redis lock is nil"))
		return nil, errors.New("service not ready (redis lock not initialized)")
	}

	lockKey := fmt.Sprintf("%s:%d", lockType, resourceId)
	backoff := redislock.LinearBackoff(100 * time.Millisecond)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, &redislock.Options{RetryStrategy: redislock.LimitRetry(backoff, 20)})
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock", lockKey, err)
		return nil, errors.New("resource is busy, try again")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock", lockKey, err)
		return nil, err
	}

	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
