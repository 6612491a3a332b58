package block

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/logger"
)

const defaultTimestampCacheSize = 4096

// head is the cached chain head
type head struct {
	number    uint64
	fetchedAt time.Time
}

// timestampEntry is a cached block timestamp
type timestampEntry struct {
	timestamp time.Time
	cachedAt  time.Time
}

// BlockProvider gives cached access to the chain head and to block timestamps
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher reads block information from the chain
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long the head is served from cache
	TTL time.Duration

	// StaleWindow is how long a cached value may be served when the fetch fails
	StaleWindow time.Duration

	// BlockTimestampTTL is how long timestamps are cached; 0 caches until evicted
	BlockTimestampTTL time.Duration

	// TimestampCacheSize bounds the number of cached block timestamps
	TimestampCacheSize int
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock
	group   singleflight.Group

	mu         sync.RWMutex
	head       *head
	timestamps *lru.Cache[uint64, timestampEntry]
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	size := config.TimestampCacheSize
	if size <= 0 {
		size = defaultTimestampCacheSize
	}

	// lru.New only fails on a non-positive size
	timestamps, _ := lru.New[uint64, timestampEntry](size)

	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: timestamps,
	}
}

// GetLatestBlock returns the latest block number, using cache if valid.
// Concurrent misses share one upstream call.
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	v, err, _ := p.group.Do("head", func() (any, error) {
		return p.fetcher.FetchLatestBlock(ctx)
	})
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number",
				zap.Uint64("block_number", cached.number),
				zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	number := v.(uint64)

	p.mu.Lock()
	// the head never moves backwards within the stale window
	if p.head == nil || number >= p.head.number || now.Sub(p.head.fetchedAt) >= p.config.StaleWindow {
		p.head = &head{number: number, fetchedAt: now}
	} else {
		number = p.head.number
		p.head.fetchedAt = now
	}
	p.mu.Unlock()

	return number, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if valid
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	cached, ok := p.timestamps.Get(blockNumber)

	now := p.clock.Now()
	if ok && (p.config.BlockTimestampTTL == 0 || now.Sub(cached.cachedAt) < p.config.BlockTimestampTTL) {
		return cached.timestamp, nil
	}

	v, err, _ := p.group.Do("ts:"+strconv.FormatUint(blockNumber, 10), func() (any, error) {
		return p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	})
	if err != nil {
		if ok && now.Sub(cached.cachedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block timestamp",
				zap.Uint64("block_number", blockNumber),
				zap.Error(err))
			return cached.timestamp, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d and no valid cache available: %w", blockNumber, err)
	}

	timestamp := v.(time.Time)
	p.timestamps.Add(blockNumber, timestampEntry{timestamp: timestamp, cachedAt: now})

	return timestamp, nil
}
