package shard

import (
	"context"
	"net"

	"github.com/go-redis/redis/v8"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("Hooks", func() {
	var hook *failureHook
	var logs *observer.ObservedLogs

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.WarnLevel)
		hook = newFailureHook("127.0.0.1:7001", zap.New(core))
	})

	It("counts consecutive network failures", func() {
		cmd := redis.NewCmd(context.Background())
		cmd.SetErr(&net.AddrError{})
		for i := 0; i < 4; i++ {
			_ = hook.AfterProcess(context.Background(), cmd)
		}
		Expect(hook.consecutiveFailures()).To(Equal(int64(4)))
		Expect(logs.FilterMessage("shard unreachable").Len()).To(Equal(1))

		_ = hook.AfterProcess(context.Background(), redis.NewCmd(context.Background()))
		Expect(hook.consecutiveFailures()).To(Equal(int64(0)))
	})

	It("ignores redis errors", func() {
		cmd := redis.NewCmd(context.Background())
		cmd.SetErr(redis.Nil)
		_ = hook.AfterProcess(context.Background(), cmd)
		Expect(hook.consecutiveFailures()).To(Equal(int64(0)))
	})

	It("counts pipeline failures once per pipeline", func() {
		failed := redis.NewCmd(context.Background())
		failed.SetErr(&net.AddrError{})
		for i := 0; i < 3; i++ {
			_ = hook.AfterProcessPipeline(context.Background(), []redis.Cmder{failed, failed})
		}
		Expect(hook.consecutiveFailures()).To(Equal(int64(3)))
		Expect(logs.Len()).To(Equal(1))
	})
})
