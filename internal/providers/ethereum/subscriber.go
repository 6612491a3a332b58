package ethereum

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/messaging"
	"github.com/modemobile/todo-rewards/internal/ownership"
)

// SubscriberConfig holds the configuration for a Transfer subscription
type SubscriberConfig struct {
	ChainID  domain.ChainID
	Contract domain.Address
}

//go:generate mockgen -destination=../../mocks/ethereum_subscription.go -package=mocks -mock_names=Subscription=MockSubscription github.com/ethereum/go-ethereum Subscription

type ethSubscriber struct {
	client EthereumClient
	config SubscriberConfig
}

// NewSubscriber creates a subscriber for the Transfer logs of one contract
func NewSubscriber(cfg SubscriberConfig, client EthereumClient) messaging.Subscriber {
	return &ethSubscriber{client: client, config: cfg}
}

// SubscribeTransfers replays Transfer logs from fromBlock up to the current head
// and then follows new logs. The live subscription is opened first so that no
// block between the replay and the live stream is lost.
func (s *ethSubscriber) SubscribeTransfers(ctx context.Context, fromBlock uint64, handler messaging.TransferHandler) error {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{s.config.Contract.Common()},
		Topics:    [][]common.Hash{{ownership.TransferEventSignature}},
	}

	logs := make(chan types.Log, 256)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from transfer logs", zap.String("contract", s.config.Contract.String()))
	}()

	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}
	head := header.Number.Uint64()
	replayed := fromBlock <= head

	if replayed {
		logger.InfoCtx(ctx, "Replaying transfer logs",
			zap.Uint64("fromBlock", fromBlock),
			zap.Uint64("toBlock", head))

		history, err := s.client.TransferLogsRange(ctx, s.config.Contract, fromBlock, head)
		if err != nil {
			return fmt.Errorf("failed to replay transfer logs: %w", err)
		}
		for _, vLog := range history {
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if vLog.BlockNumber < fromBlock || (replayed && vLog.BlockNumber <= head) {
				continue
			}
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}
}

// deliver parses one log and hands it to the handler. Parse failures are
// logged and skipped; a handler error stops the subscription.
func (s *ethSubscriber) deliver(ctx context.Context, vLog types.Log, handler messaging.TransferHandler) error {
	if vLog.Removed {
		logger.WarnCtx(ctx, "Ignoring transfer log removed by reorg",
			zap.String("txHash", vLog.TxHash.Hex()),
			zap.Uint64("block", vLog.BlockNumber))
		return nil
	}

	event, err := s.client.ParseTransferLog(ctx, vLog)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.ErrorCtx(ctx, err, zap.String("message", "Error parsing transfer log"), zap.String("txHash", vLog.TxHash.Hex()))
		return nil
	}
	if event == nil {
		return nil
	}

	if err := handler(event); err != nil {
		return fmt.Errorf("failed to handle transfer %s#%d: %w", event.TxHash, event.LogIndex, err)
	}
	return nil
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
