package shard

import (
	"context"
	"net"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// failureLogThreshold is the number of consecutive network failures after
// which a shard is reported as unreachable.
const failureLogThreshold = 3

// failureHook counts consecutive network failures of one shard.
type failureHook struct {
	addr     string
	failures int64
	logger   *zap.Logger
}

var _ redis.Hook = (*failureHook)(nil)

func newFailureHook(addr string, logger *zap.Logger) *failureHook {
	return &failureHook{addr: addr, logger: logger}
}

func (h *failureHook) observe(err error) {
	if !isNetworkError(err) {
		atomic.StoreInt64(&h.failures, 0)
		return
	}
	if atomic.AddInt64(&h.failures, 1) == failureLogThreshold {
		h.logger.Warn("shard unreachable", zap.String("addr", h.addr), zap.Error(err))
	}
}

func (h *failureHook) consecutiveFailures() int64 {
	return atomic.LoadInt64(&h.failures)
}

func (h *failureHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h *failureHook) AfterProcess(ctx context.Context, cmd redis.Cmder) error {
	h.observe(cmd.Err())
	return nil
}

func (h *failureHook) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h *failureHook) AfterProcessPipeline(ctx context.Context, cmds []redis.Cmder) error {
	for _, cmd := range cmds {
		if isNetworkError(cmd.Err()) {
			h.observe(cmd.Err())
			return nil
		}
	}
	h.observe(nil)
	return nil
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	// Network error
	_, ok := err.(net.Error)
	return ok
}
