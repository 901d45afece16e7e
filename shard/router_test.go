package shard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bitleak/go-ahash/hashkit"
)

var addrs = []string{"127.0.0.1:7001", "127.0.0.1:7002", "127.0.0.1:7003", "127.0.0.1:7004"}

func countKeys(ctx context.Context, client *redis.Client, keys ...string) redis.Cmder {
	return redis.NewIntResult(int64(len(keys)), nil)
}

var _ = Describe("Router", func() {
	var router *Router

	newRouter := func(distributeType int) *Router {
		r, err := NewRouter(&ShardConfig{
			Addrs:          addrs,
			Options:        &redis.Options{DB: 1},
			DistributeType: distributeType,
		})
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		router = newRouter(DistributeByKetama)
	})

	AfterEach(func() {
		Expect(router.Close()).To(Succeed())
	})

	It("rejects configs without shards", func() {
		_, err := NewRouter(nil)
		Expect(err).To(HaveOccurred())
		_, err = NewRouter(&ShardConfig{})
		Expect(err).To(HaveOccurred())
		_, err = NewRouter(&ShardConfig{Addrs: []string{"127.0.0.1:7001", ""}})
		Expect(err).To(HaveOccurred())
	})

	It("fills in defaults", func() {
		cfg := &ShardConfig{Addrs: addrs}
		r, err := NewRouter(cfg)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(cfg.DistributeType).To(Equal(DistributeByModular))
		Expect(cfg.HashFn).NotTo(BeNil())
		for i := 0; i < 100; i++ {
			key := "key" + strconv.Itoa(i)
			Expect(r.Index(key)).To(Equal(hashkit.Ahash([]byte(key)) % uint32(len(addrs))))
		}
	})

	It("gives every shard its own client with the shared options", func() {
		Expect(router.Shards()).To(HaveLen(len(addrs)))
		for i, client := range router.Shards() {
			Expect(client.Options().Addr).To(Equal(addrs[i]))
			Expect(client.Options().DB).To(Equal(1))
			Expect(router.ConsecutiveFailures(uint32(i))).To(BeZero())
		}
	})

	It("routes keys consistently", func() {
		other := newRouter(DistributeByKetama)
		defer other.Close()
		for i := 0; i < 1000; i++ {
			key := "key" + strconv.Itoa(i)
			Expect(router.Index(key)).To(Equal(other.Index(key)))
			Expect(router.Client(key)).To(BeIdenticalTo(router.Shards()[router.Index(key)]))
		}
	})

	It("spreads keys over every shard", func() {
		counts := make(map[uint32]int)
		for i := 0; i < 10000; i++ {
			counts[router.Index("key"+strconv.Itoa(i))]++
		}
		Expect(counts).To(HaveLen(len(addrs)))
	})

	It("keeps keys with the same hash tag together", func() {
		keys := make([]string, 0, 50)
		for i := 0; i < 50; i++ {
			keys = append(keys, fmt.Sprintf("{user1000}:field%d", i))
		}
		Expect(router.IsCrossShards(keys...)).To(BeFalse())
		Expect(router.GroupKeys(keys...)).To(HaveLen(1))
		client, err := router.SingleShard(keys...)
		Expect(err).NotTo(HaveOccurred())
		Expect(client).To(BeIdenticalTo(router.Client("user1000")))
	})

	It("groups keys by shard", func() {
		keys := make([]string, 0, 100)
		for i := 0; i < 100; i++ {
			keys = append(keys, "key"+strconv.Itoa(i))
		}
		groups := router.GroupKeys(keys...)
		total := 0
		for ind, group := range groups {
			total += len(group)
			for _, key := range group {
				Expect(router.Index(key)).To(Equal(ind))
			}
		}
		Expect(total).To(Equal(len(keys)))
		Expect(router.IsCrossShards(keys...)).To(BeTrue())
		_, err := router.SingleShard(keys...)
		Expect(err).To(MatchError(errCrossMultiShards))
	})

	It("sums integer replies across shards", func() {
		keys := make([]string, 0, 100)
		for i := 0; i < 100; i++ {
			keys = append(keys, "key"+strconv.Itoa(i))
		}
		total, err := router.DoMultiIntCommand(context.Background(), countKeys, keys...)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(len(keys))))

		total, err = router.DoMultiIntCommand(context.Background(), countKeys, "single")
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
	})

	It("combines errors of failed shards", func() {
		core, logs := observer.New(zapcore.WarnLevel)
		r, err := NewRouter(&ShardConfig{Addrs: addrs, DistributeType: DistributeByKetama}, WithLogger(zap.New(core)))
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		failing := func(ctx context.Context, client *redis.Client, keys ...string) redis.Cmder {
			return redis.NewIntResult(0, errors.New("down"))
		}
		keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		groups := len(r.GroupKeys(keys...))
		_, err = r.DoMultiIntCommand(context.Background(), failing, keys...)
		Expect(multierr.Errors(err)).To(HaveLen(groups))
		Expect(logs.Len()).To(Equal(groups))
	})

	It("runs a function on every shard", func() {
		seen := make(chan string, len(addrs))
		err := router.ForEachShard(context.Background(), func(ctx context.Context, client *redis.Client) error {
			seen <- client.Options().Addr
			if client.Options().Addr == addrs[0] {
				return errors.New("flush failed")
			}
			return nil
		})
		close(seen)
		Expect(err).To(MatchError(ContainSubstring(addrs[0])))
		Expect(multierr.Errors(err)).To(HaveLen(1))
		var got []string
		for addr := range seen {
			got = append(got, addr)
		}
		Expect(got).To(ConsistOf(addrs))
	})

	It("logs its construction", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		r, err := NewRouter(&ShardConfig{Addrs: addrs}, WithLogger(zap.New(core)))
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(logs.FilterMessage("shard router ready").Len()).To(Equal(1))
	})
})
