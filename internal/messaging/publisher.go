package messaging

import (
	"context"

	"github.com/modemobile/todo-rewards/internal/domain"
)

// Publisher fans out decoded transfers to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishTransfer publishes one transfer of contract on chain
	PublishTransfer(ctx context.Context, message domain.TransferMessage) error
	// Close closes the connection
	Close()
}
