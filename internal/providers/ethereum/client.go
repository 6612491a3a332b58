package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/block"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/ownership"
)

const (
	defaultLogRangeSize   = 50_000
	defaultLogConcurrency = 4
	defaultMaxRetries     = 3

	// MaxConfirmations caps the confirmations a caller may wait for
	MaxConfirmations = 64
)

const erc20ABIJSON = `[
{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

var erc20ABI = mustParseABI(erc20ABIJSON)

// Config holds the configuration for the Ethereum client
type Config struct {
	ChainID        domain.ChainID
	LogRangeSize   uint64 // blocks per eth_getLogs range before step halving
	LogConcurrency int    // ranges queried in parallel
	MaxRetries     uint64 // retries of a range on transient RPC errors
	RetryInterval  time.Duration
}

// EthereumClient reads reward contract state from an EVM node
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// TransferLogs returns the Transfer logs of contract from fromBlock up to the chain head
	TransferLogs(ctx context.Context, contract domain.Address, fromBlock uint64) ([]types.Log, error)

	// TransferLogsRange returns the Transfer logs of contract in [fromBlock, toBlock]
	TransferLogsRange(ctx context.Context, contract domain.Address, fromBlock, toBlock uint64) ([]types.Log, error)

	// OwnedTokens resolves the token ids of contract currently held by owner
	OwnedTokens(ctx context.Context, contract, owner domain.Address, fromBlock uint64) ([]string, error)

	// ERC20Balance reads balance, decimals and symbol of an ERC-20 token
	ERC20Balance(ctx context.Context, token, owner domain.Address) (*domain.TokenBalance, error)

	// TransactionStatus reports whether a transaction is mined with enough confirmations
	TransactionStatus(ctx context.Context, hash string, confirmations uint64) (*domain.TransactionStatus, error)

	// ParseTransferLog decodes a Transfer log and attaches its block timestamp.
	// It returns nil, nil for logs that are not ERC-721 transfers.
	ParseTransferLog(ctx context.Context, vLog types.Log) (*domain.TransferEvent, error)

	// SubscribeFilterLogs subscribes to filter logs
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// HeaderByNumber returns a header by number, bypassing the head cache
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// Close stops the worker pool and closes the connection
	Close()
}

type ethereumClient struct {
	config Config
	client adapter.EthClient
	blocks block.BlockProvider
	pool   pond.ResultPool[[]types.Log]
}

// NewClient creates a new Ethereum client
func NewClient(cfg Config, client adapter.EthClient, blocks block.BlockProvider) EthereumClient {
	if cfg.LogRangeSize == 0 {
		cfg.LogRangeSize = defaultLogRangeSize
	}
	if cfg.LogConcurrency <= 0 {
		cfg.LogConcurrency = defaultLogConcurrency
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = 500 * time.Millisecond
	}

	return &ethereumClient{
		config: cfg,
		client: client,
		blocks: blocks,
		pool:   pond.NewResultPool[[]types.Log](cfg.LogConcurrency),
	}
}

// SubscribeFilterLogs subscribes to filter logs
func (c *ethereumClient) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.client.SubscribeFilterLogs(ctx, query, ch)
}

// HeaderByNumber returns a header by number
func (c *ethereumClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.client.HeaderByNumber(ctx, number)
}

// TransferLogs returns the Transfer logs of contract from fromBlock up to the cached head
func (c *ethereumClient) TransferLogs(ctx context.Context, contract domain.Address, fromBlock uint64) ([]types.Log, error) {
	head, err := c.blocks.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}
	return c.TransferLogsRange(ctx, contract, fromBlock, head)
}

// TransferLogsRange splits [fromBlock, toBlock] into ranges queried in parallel.
// Logs come back in range order, which is block order.
func (c *ethereumClient) TransferLogsRange(ctx context.Context, contract domain.Address, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return []types.Log{}, nil
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{contract.Common()},
		Topics:    [][]common.Hash{{ownership.TransferEventSignature}},
	}

	group := c.pool.NewGroupContext(ctx)
	for from := fromBlock; from <= toBlock; {
		to := from + c.config.LogRangeSize - 1
		if to > toBlock || to < from {
			to = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(from)
		rangeQuery.ToBlock = new(big.Int).SetUint64(to)
		group.SubmitErr(func() ([]types.Log, error) {
			return c.getLogsWithRetry(ctx, rangeQuery)
		})

		if to == toBlock {
			break
		}
		from = to + 1
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer logs for blocks %d-%d: %w", fromBlock, toBlock, err)
	}

	var logs []types.Log
	for _, r := range results {
		logs = append(logs, r...)
	}

	logger.DebugCtx(ctx, "Fetched transfer logs",
		zap.String("contract", contract.String()),
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("count", len(logs)))

	return logs, nil
}

// getLogsWithRetry processes the query range in chunks. A "too many results"
// answer halves the chunk; other errors are retried with exponential backoff.
func (c *ethereumClient) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	stepSize := query.ToBlock.Uint64() - query.FromBlock.Uint64() + 1
	currentFrom := query.FromBlock.Uint64()
	end := query.ToBlock.Uint64()

	var allLogs []types.Log
	for currentFrom <= end {
		currentTo := currentFrom + stepSize - 1
		if currentTo > end {
			currentTo = end
		}

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(currentFrom)
		chunk.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.filterLogs(ctx, chunk)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if currentTo == end {
				break
			}
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) {
			return nil, err
		}
		if stepSize == 1 {
			return nil, fmt.Errorf("block %d alone exceeds the provider result limit: %w", currentFrom, err)
		}

		stepSize /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", stepSize*2),
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// filterLogs calls eth_getLogs, retrying transient failures
func (c *ethereumClient) filterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.RetryInterval
	b.MaxInterval = 10 * c.config.RetryInterval

	var logs []types.Log
	operation := func() error {
		var err error
		logs, err = c.client.FilterLogs(ctx, query)
		if err == nil {
			return nil
		}
		if isTooManyResultsError(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "eth_getLogs failed, retrying",
			zap.Error(err),
			zap.Uint64("fromBlock", query.FromBlock.Uint64()),
			zap.Uint64("toBlock", query.ToBlock.Uint64()),
			zap.Duration("next_retry_in", next))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.config.MaxRetries), ctx), notify)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "query returned more than") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "block range is too large") ||
		strings.Contains(errStr, "exceeded maximum")
}

// OwnedTokens resolves the token ids of contract currently held by owner
func (c *ethereumClient) OwnedTokens(ctx context.Context, contract, owner domain.Address, fromBlock uint64) ([]string, error) {
	logs, err := c.TransferLogs(ctx, contract, fromBlock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrChainUnavailable, err)
	}
	return ownership.OwnedTokensFromLogs(logs, owner.Lower()), nil
}

// ERC20Balance reads balance, decimals and symbol of an ERC-20 token
func (c *ethereumClient) ERC20Balance(ctx context.Context, token, owner domain.Address) (*domain.TokenBalance, error) {
	out, err := c.call(ctx, token, "balanceOf", owner.Common())
	if err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf output type %T", out[0])
	}

	out, err = c.call(ctx, token, "decimals")
	if err != nil {
		return nil, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return nil, fmt.Errorf("unexpected decimals output type %T", out[0])
	}

	out, err = c.call(ctx, token, "symbol")
	if err != nil {
		return nil, err
	}
	symbol, ok := out[0].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected symbol output type %T", out[0])
	}

	formatted := domain.FormatUnits(balance, decimals)
	return &domain.TokenBalance{
		Token:            token,
		Owner:            owner,
		Balance:          balance,
		BalanceFormatted: formatted,
		BalanceCompact:   domain.CompactNumber(formatted, 2, domain.RoundDown),
		Decimals:         decimals,
		Symbol:           symbol,
	}, nil
}

// call packs and executes a read-only ERC-20 call and unpacks its outputs
func (c *ethereumClient) call(ctx context.Context, contract domain.Address, method string, args ...any) ([]any, error) {
	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	to := contract.Common()
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to call %s: %w", domain.ErrChainUnavailable, method, err)
	}

	out, err := erc20ABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty %s result", method)
	}
	return out, nil
}

// TransactionStatus reports whether a transaction is mined with enough confirmations
func (c *ethereumClient) TransactionStatus(ctx context.Context, hash string, confirmations uint64) (*domain.TransactionStatus, error) {
	if !isTxHash(hash) {
		return nil, fmt.Errorf("%w: transaction hash %q", domain.ErrInvalidFormat, hash)
	}
	if confirmations > MaxConfirmations {
		return nil, fmt.Errorf("%w: confirmations must be between 0 and %d", domain.ErrInvalidFormat, MaxConfirmations)
	}

	txHash := common.HexToHash(hash)
	status := &domain.TransactionStatus{
		Hash:     txHash.Hex(),
		State:    domain.TransactionPending,
		Required: confirmations,
	}

	receipt, err := c.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: failed to get transaction receipt: %w", domain.ErrChainUnavailable, err)
		}

		// no receipt yet: pending if the node knows the transaction at all
		_, _, err = c.client.TransactionByHash(ctx, txHash)
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, txHash.Hex())
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get transaction: %w", domain.ErrChainUnavailable, err)
		}
		return status, nil
	}

	head, err := c.blocks.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get latest block: %w", domain.ErrChainUnavailable, err)
	}

	mined := receipt.BlockNumber.Uint64()
	status.BlockNumber = &mined
	status.Confirmations = 1
	if head > mined {
		status.Confirmations = head - mined + 1
	}

	if status.Confirmations < confirmations {
		return status, nil
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		status.State = domain.TransactionSuccess
	} else {
		status.State = domain.TransactionReverted
	}
	return status, nil
}

// ParseTransferLog decodes a Transfer log and attaches its block timestamp
func (c *ethereumClient) ParseTransferLog(ctx context.Context, vLog types.Log) (*domain.TransferEvent, error) {
	event, ok := ownership.DecodeTransferLog(vLog)
	if !ok {
		logger.DebugCtx(ctx, "Skipping non ERC-721 transfer log",
			zap.String("contract", vLog.Address.Hex()),
			zap.String("txHash", vLog.TxHash.Hex()),
			zap.Int("topics", len(vLog.Topics)))
		return nil, nil
	}

	timestamp, err := c.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get block timestamp: %w", err)
	}
	event.Timestamp = timestamp

	return &event, nil
}

// Close stops the worker pool and closes the connection
func (c *ethereumClient) Close() {
	c.pool.StopAndWait()
	c.client.Close()
}

func isTxHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, r := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid ABI: %v", err))
	}
	return parsed
}
