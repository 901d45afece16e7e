package shard

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bitleak/go-ahash/hashkit"
)

const (
	// DistributeByModular selects the shard by hash modular
	DistributeByModular = iota + 1
	// DistributeByKetama selects the shard by ketama consistent algorithm
	DistributeByKetama
)

var (
	errNoShards         = errors.New("at least one shard address is required")
	errCrossMultiShards = errors.New("cross multi shards was not allowed")
)

type ShardConfig struct {
	Addrs          []string
	Options        *redis.Options // shared client options, Addr is replaced per shard
	DistributeType int            // distribution type of the shards, supports `DistributeByModular` or `DistributeByKetama`
	HashFn         hashkit.HashFn // hash of the key, hashkit.Ahash by default
}

// Option configures a Router.
type Option func(r *Router)

// WithLogger sets the logger of the router.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// Router maps keys to one redis client per shard.
type Router struct {
	cfg    *ShardConfig
	shards []*redis.Client
	hooks  []*failureHook
	hash   hashkit.HashKit
	logger *zap.Logger
}

// NewRouter creates a client per address. Clients connect lazily, so no
// network traffic happens here.
func NewRouter(cfg *ShardConfig, opts ...Option) (*Router, error) {
	if cfg == nil || len(cfg.Addrs) == 0 {
		return nil, errNoShards
	}
	router := &Router{
		cfg:    cfg,
		shards: make([]*redis.Client, len(cfg.Addrs)),
		hooks:  make([]*failureHook, len(cfg.Addrs)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(router)
	}
	if cfg.DistributeType < DistributeByModular || cfg.DistributeType > DistributeByKetama {
		cfg.DistributeType = DistributeByModular
	}
	if cfg.HashFn == nil {
		cfg.HashFn = hashkit.Ahash
	}

	servers := make([]*hashkit.Server, 0, len(cfg.Addrs))
	for idx, addr := range cfg.Addrs {
		if addr == "" {
			_ = router.closeShards(router.shards[:idx])
			return nil, errors.Errorf("shard %d has an empty address", idx)
		}
		var options redis.Options
		if cfg.Options != nil {
			options = *cfg.Options
		}
		options.Addr = addr
		router.shards[idx] = redis.NewClient(&options)
		router.hooks[idx] = newFailureHook(addr, router.logger)
		router.shards[idx].AddHook(router.hooks[idx])
		servers = append(servers, &hashkit.Server{
			Name:   addr,
			Weight: 1,
			Index:  uint32(idx),
		})
	}
	if cfg.DistributeType == DistributeByKetama {
		router.hash = hashkit.NewKetama(servers, cfg.HashFn)
	} else {
		router.hash = hashkit.NewModular(servers, cfg.HashFn)
	}
	router.logger.Debug("shard router ready",
		zap.Int("shards", len(router.shards)),
		zap.Int("distribute_type", cfg.DistributeType),
	)
	return router, nil
}

// Index returns the shard of key. Only the hash tag is hashed when the key
// has one, so "{user1}:name" and "{user1}:age" share a shard.
func (r *Router) Index(key string) uint32 {
	return r.hash.Dispatch(extractHashPrefix(key))
}

// Client returns the client of the shard owning key.
func (r *Router) Client(key string) *redis.Client {
	return r.shards[r.Index(key)]
}

// Shards returns all clients in configuration order.
func (r *Router) Shards() []*redis.Client {
	return r.shards
}

// ConsecutiveFailures returns the number of network failures of shard index
// since its last successful command.
func (r *Router) ConsecutiveFailures(index uint32) int64 {
	return r.hooks[index].consecutiveFailures()
}

// GroupKeys groups keys by shard index, preserving their relative order.
func (r *Router) GroupKeys(keys ...string) map[uint32][]string {
	index2Keys := make(map[uint32][]string)
	for _, key := range keys {
		ind := r.Index(key)
		index2Keys[ind] = append(index2Keys[ind], key)
	}
	return index2Keys
}

// IsCrossShards reports whether keys live on more than one shard.
func (r *Router) IsCrossShards(keys ...string) bool {
	var ind uint32
	for i, key := range keys {
		newInd := r.Index(key)
		if i == 0 {
			ind = newInd
		} else if newInd != ind {
			return true
		}
	}
	return false
}

// SingleShard returns the client owning all keys, or an error when the keys
// span several shards.
func (r *Router) SingleShard(keys ...string) (*redis.Client, error) {
	if len(keys) == 0 {
		return r.shards[0], nil
	}
	if r.IsCrossShards(keys...) {
		return nil, errCrossMultiShards
	}
	return r.Client(keys[0]), nil
}

// MultiKeyFn runs one command for keys that all live on client.
type MultiKeyFn func(ctx context.Context, client *redis.Client, keys ...string) redis.Cmder

// DoMultiKeys splits keys by shard and runs fn once per shard in parallel.
func (r *Router) DoMultiKeys(ctx context.Context, fn MultiKeyFn, keys ...string) []redis.Cmder {
	index2Keys := r.GroupKeys(keys...)
	if len(index2Keys) <= 1 {
		return []redis.Cmder{fn(ctx, r.Client(firstKey(keys)), keys...)}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make([]redis.Cmder, 0, len(index2Keys))
	for ind, keyList := range index2Keys {
		wg.Add(1)
		go func(client *redis.Client, keyList []string) {
			defer wg.Done()
			result := fn(ctx, client, keyList...)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(r.shards[ind], keyList)
	}
	wg.Wait()
	return results
}

// DoMultiIntCommand sums the integer replies of DoMultiKeys, e.g. for DEL or
// EXISTS. Shards that fail are skipped and their errors combined.
func (r *Router) DoMultiIntCommand(ctx context.Context, fn MultiKeyFn, keys ...string) (int64, error) {
	var err error
	total := int64(0)
	for _, result := range r.DoMultiKeys(ctx, fn, keys...) {
		cmd, ok := result.(*redis.IntCmd)
		if !ok {
			err = multierr.Append(err, errors.Errorf("unexpected reply type %T", result))
			continue
		}
		if cmd.Err() != nil {
			r.logger.Warn("partial failure in multi key command", zap.String("cmd", cmd.Name()), zap.Error(cmd.Err()))
			err = multierr.Append(err, cmd.Err())
			continue
		}
		total += cmd.Val()
	}
	return total, err
}

// ForEachShard runs fn on every shard in parallel and returns the combined errors.
func (r *Router) ForEachShard(ctx context.Context, fn func(ctx context.Context, client *redis.Client) error) error {
	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs error
	for _, client := range r.shards {
		wg.Add(1)
		go func(client *redis.Client) {
			defer wg.Done()
			if err := fn(ctx, client); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, errors.Wrapf(err, "shard %s", client.Options().Addr))
				mu.Unlock()
			}
		}(client)
	}
	wg.Wait()
	return errs
}

// Close closes every shard client.
func (r *Router) Close() error {
	return r.closeShards(r.shards)
}

func (r *Router) closeShards(shards []*redis.Client) error {
	var errs error
	for _, client := range shards {
		errs = multierr.Append(errs, client.Close())
	}
	return errs
}

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
