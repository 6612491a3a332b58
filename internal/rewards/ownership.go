package rewards

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/ownership"
	"github.com/modemobile/todo-rewards/internal/store"
)

// TokenOwnership resolves the reward tokens currently held by an account
//
//go:generate mockgen -source=ownership.go -destination=../mocks/token_ownership.go -package=mocks -mock_names=TokenOwnership=MockTokenOwnership
type TokenOwnership interface {
	OwnedTokens(ctx context.Context, owner domain.Address) ([]string, error)
}

// ChainReader resolves token ownership from the Transfer logs of a contract
type ChainReader interface {
	OwnedTokens(ctx context.Context, contract, owner domain.Address, fromBlock uint64) ([]string, error)
}

type chainOwnership struct {
	client    ChainReader
	contract  domain.Address
	fromBlock uint64
}

// NewChainOwnership resolves ownership from the Transfer logs of the contract since fromBlock
func NewChainOwnership(client ChainReader, contract domain.Address, fromBlock uint64) TokenOwnership {
	return &chainOwnership{client: client, contract: contract, fromBlock: fromBlock}
}

func (o *chainOwnership) OwnedTokens(ctx context.Context, owner domain.Address) ([]string, error) {
	return o.client.OwnedTokens(ctx, o.contract, owner, o.fromBlock)
}

type storeOwnership struct {
	store    store.Store
	chainID  domain.ChainID
	contract domain.Address
}

// NewStoreOwnership resolves ownership from the transfer events persisted by the transfer emitter
func NewStoreOwnership(store store.Store, chainID domain.ChainID, contract domain.Address) TokenOwnership {
	return &storeOwnership{store: store, chainID: chainID, contract: contract}
}

func (o *storeOwnership) OwnedTokens(ctx context.Context, owner domain.Address) ([]string, error) {
	rows, err := o.store.ListTransferEvents(ctx, store.TransferEventFilter{
		ChainID:         o.chainID.Int64(),
		ContractAddress: o.contract.Lower(),
		Account:         owner.Lower(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer events: %w", err)
	}

	events := make([]domain.TransferEvent, 0, len(rows))
	for _, row := range rows {
		tokenID, ok := new(big.Int).SetString(row.TokenNumber, 10)
		if !ok {
			logger.WarnCtx(ctx, "Skipping transfer event with invalid token number",
				zap.String("txHash", row.TxHash),
				zap.String("tokenNumber", row.TokenNumber))
			continue
		}
		events = append(events, domain.TransferEvent{
			From:        row.FromAddress,
			To:          row.ToAddress,
			TokenID:     tokenID,
			BlockNumber: row.BlockNumber,
			TxHash:      row.TxHash,
			LogIndex:    row.LogIndex,
			Timestamp:   row.Timestamp,
		})
	}

	return ownership.ResolveOwnedTokens(events, owner.Lower()), nil
}
