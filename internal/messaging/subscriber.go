package messaging

import (
	"context"

	"github.com/modemobile/todo-rewards/internal/domain"
)

// TransferHandler is called for every decoded transfer, in block order.
// Returning an error ends the subscription.
type TransferHandler func(event *domain.TransferEvent) error

// Subscriber follows the Transfer logs of the reward contract
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeTransfers replays transfers from fromBlock and then follows new ones
	SubscribeTransfers(ctx context.Context, fromBlock uint64, handler TransferHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
