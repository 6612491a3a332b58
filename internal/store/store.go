package store

import (
	"context"
	"time"

	"github.com/modemobile/todo-rewards/internal/store/schema"
)

// UpsertUserInput is the sign-in record of a wallet
type UpsertUserInput struct {
	Address     string
	ChainID     int64
	LastLoginAt time.Time
}

// CreateTodoInput holds a new todo
type CreateTodoInput struct {
	ID           string
	OwnerAddress string
	Title        string
	Description  string
	DueDate      time.Time
	Priority     string
	CreatedAt    time.Time
}

// UpdateTodoInput replaces the editable fields of a todo
type UpdateTodoInput struct {
	ID           string
	OwnerAddress string
	Title        string
	Description  string
	DueDate      time.Time
	Priority     string
	Completed    bool
	// UpdatedAt stamps completed_at on the first completion
	UpdatedAt time.Time
}

// CreateTransferEventInput holds one decoded Transfer log
type CreateTransferEventInput struct {
	ChainID         int64
	ContractAddress string
	TokenNumber     string
	EventType       schema.TransferEventType
	FromAddress     string
	ToAddress       string
	TxHash          string
	LogIndex        uint
	BlockNumber     uint64
	Timestamp       time.Time
	Raw             []byte
}

// TransferEventFilter selects the transfer history relevant to an account
type TransferEventFilter struct {
	ChainID         int64
	ContractAddress string
	// Account limits the result to tokens the account has ever received
	Account string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CursorStore

	// UpsertUser creates the user or refreshes its last login and chain
	UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error)
	// GetUser retrieves a user by address, nil when absent
	GetUser(ctx context.Context, address string) (*schema.User, error)

	// ListTodos returns the most recently created todos of owner, newest first
	ListTodos(ctx context.Context, owner string, limit int) ([]schema.Todo, error)
	// GetTodo retrieves a todo of owner, nil when absent
	GetTodo(ctx context.Context, owner, id string) (*schema.Todo, error)
	// CreateTodo inserts a todo
	CreateTodo(ctx context.Context, input CreateTodoInput) (*schema.Todo, error)
	// UpdateTodo replaces a todo of owner, nil when absent
	UpdateTodo(ctx context.Context, input UpdateTodoInput) (*schema.Todo, error)
	// DeleteTodo deletes a todo of owner and reports whether it existed
	DeleteTodo(ctx context.Context, owner, id string) (bool, error)
	// CountCompletedTodos counts the completed todos of owner
	CountCompletedTodos(ctx context.Context, owner string) (int64, error)

	// CreateTransferEvent inserts a Transfer log and reports whether it was new
	CreateTransferEvent(ctx context.Context, input CreateTransferEventInput) (bool, error)
	// ListTransferEvents returns transfers matching filter ordered by block and log index
	ListTransferEvents(ctx context.Context, filter TransferEventFilter) ([]schema.TransferEvent, error)
}
