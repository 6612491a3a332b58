package emitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/messaging"
	"github.com/modemobile/todo-rewards/internal/store"
	"github.com/modemobile/todo-rewards/internal/store/schema"
)

const (
	defaultResubscribeInitialInterval = time.Second
	defaultResubscribeMaxInterval     = time.Minute
)

// Config holds the configuration for the transfer emitter
type Config struct {
	ChainID         domain.ChainID
	Contract        domain.Address
	StartBlock      uint64
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds

	ResubscribeInitialInterval time.Duration
	ResubscribeMaxInterval     time.Duration
}

// CursorName is the key_value_store cursor of one contract
func (c Config) CursorName() string {
	return fmt.Sprintf("%s:%s", c.ChainID, c.Contract.Lower())
}

// Emitter defines the interface for the transfer emitter
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run follows the reward contract until ctx ends
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

// emitter persists reward contract transfers and publishes them to NATS
type emitter struct {
	subscriber messaging.Subscriber
	publisher  messaging.Publisher
	store      store.Store
	json       adapter.JSON
	config     Config
	clock      adapter.Clock
}

// NewEmitter creates a new transfer emitter
func NewEmitter(
	sub messaging.Subscriber,
	pub messaging.Publisher,
	st store.Store,
	jsonAdapter adapter.JSON,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.ResubscribeInitialInterval <= 0 {
		cfg.ResubscribeInitialInterval = defaultResubscribeInitialInterval
	}
	if cfg.ResubscribeMaxInterval <= 0 {
		cfg.ResubscribeMaxInterval = defaultResubscribeMaxInterval
	}

	return &emitter{
		subscriber: sub,
		publisher:  pub,
		store:      st,
		json:       jsonAdapter,
		config:     cfg,
		clock:      clock,
	}
}

// cursor tracks the progress of the subscription.
// Blocks below next have been fully handled.
type cursor struct {
	next      uint64
	saved     uint64
	savedAt   time.Time
	delivered bool
}

// Run starts the transfer emitter. The subscription is reopened with
// exponential backoff whenever it fails, until ctx ends.
func (e *emitter) Run(ctx context.Context) error {
	startBlock, err := e.startBlock(ctx)
	if err != nil {
		return err
	}

	cur := &cursor{next: startBlock, savedAt: e.clock.Now()}
	if startBlock > 0 {
		cur.saved = startBlock - 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.config.ResubscribeInitialInterval
	b.MaxInterval = e.config.ResubscribeMaxInterval
	b.MaxElapsedTime = 0

	for {
		cur.delivered = false
		logger.InfoCtx(ctx, "Starting transfer subscription",
			zap.String("cursor", e.config.CursorName()),
			zap.Uint64("fromBlock", cur.next))

		err := e.subscriber.SubscribeTransfers(ctx, cur.next, func(event *domain.TransferEvent) error {
			return e.handle(ctx, cur, event)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if cur.delivered {
			b.Reset()
		}
		wait := b.NextBackOff()

		if err == nil {
			err = errors.New("subscription ended")
		}
		logger.WarnCtx(ctx, "Transfer subscription interrupted, resubscribing",
			zap.Error(err),
			zap.Uint64("fromBlock", cur.next),
			zap.Duration("backoff", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.clock.After(wait):
		}
	}
}

// startBlock resolves the first block to follow: configured, else after the
// saved cursor, else the current head
func (e *emitter) startBlock(ctx context.Context) (uint64, error) {
	name := e.config.CursorName()

	if e.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block", zap.String("cursor", name), zap.Uint64("block", e.config.StartBlock))
		return e.config.StartBlock, nil
	}

	lastBlock, err := e.store.GetBlockCursor(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if lastBlock > 0 {
		logger.InfoCtx(ctx, "Resuming from last processed block", zap.String("cursor", name), zap.Uint64("block", lastBlock+1))
		return lastBlock + 1, nil
	}

	latestBlock, err := e.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", zap.String("cursor", name), zap.Uint64("block", latestBlock))
	return latestBlock, nil
}

// handle persists and publishes one transfer, then advances the cursor.
// Transfers arrive in block order, so every block below the current one is complete.
func (e *emitter) handle(ctx context.Context, cur *cursor, event *domain.TransferEvent) error {
	message := domain.NewTransferMessage(e.config.ChainID, e.config.Contract, *event)

	raw, err := e.json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer: %w", err)
	}

	created, err := e.store.CreateTransferEvent(ctx, store.CreateTransferEventInput{
		ChainID:         e.config.ChainID.Int64(),
		ContractAddress: message.ContractAddress,
		TokenNumber:     message.TokenNumber,
		EventType:       schema.TransferEventType(message.EventType),
		FromAddress:     message.FromAddress,
		ToAddress:       message.ToAddress,
		TxHash:          message.TxHash,
		LogIndex:        message.LogIndex,
		BlockNumber:     message.BlockNumber,
		Timestamp:       message.Timestamp,
		Raw:             raw,
	})
	if err != nil {
		return fmt.Errorf("failed to store transfer %s: %w", event.TxHash, err)
	}

	// replayed transfers are republished; JetStream drops them by message id
	if err := e.publisher.PublishTransfer(ctx, message); err != nil {
		return fmt.Errorf("failed to publish transfer %s: %w", event.TxHash, err)
	}

	logger.DebugCtx(ctx, "Emitted transfer",
		zap.String("txHash", message.TxHash),
		zap.Uint("logIndex", message.LogIndex),
		zap.String("tokenNumber", message.TokenNumber),
		zap.String("eventType", string(message.EventType)),
		zap.Bool("new", created))

	cur.delivered = true
	if event.BlockNumber > cur.next {
		cur.next = event.BlockNumber
	}

	e.maybeSaveCursor(ctx, cur)
	return nil
}

// maybeSaveCursor saves the last complete block every CursorSaveFreq blocks or CursorSaveDelay
func (e *emitter) maybeSaveCursor(ctx context.Context, cur *cursor) {
	if cur.next == 0 {
		return
	}
	complete := cur.next - 1
	if complete <= cur.saved {
		return
	}

	shouldSave := complete-cur.saved >= e.config.CursorSaveFreq ||
		e.clock.Since(cur.savedAt) >= e.config.CursorSaveDelay
	if !shouldSave {
		return
	}

	if err := e.store.SetBlockCursor(ctx, e.config.CursorName(), complete); err != nil {
		logger.WarnCtx(ctx, "Failed to save block cursor", zap.Error(err), zap.Uint64("block", complete))
		return
	}
	cur.saved = complete
	cur.savedAt = e.clock.Now()
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.subscriber.Close()
	e.publisher.Close()
}
