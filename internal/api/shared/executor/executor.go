package executor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/api/shared/dto"
	apierrors "github.com/modemobile/todo-rewards/internal/api/shared/errors"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/providers/ethereum"
	"github.com/modemobile/todo-rewards/internal/rewards"
	"github.com/modemobile/todo-rewards/internal/todo"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// IssueNonce returns a nonce and the values a wallet needs to build a sign-in message
	IssueNonce(ctx context.Context) (*dto.NonceResponse, error)

	// Verify checks a signed sign-in message and opens a session
	Verify(ctx context.Context, req dto.VerifyRequest) (*dto.SessionResponse, error)

	// GetSession describes the session of an authenticated request
	GetSession(ctx context.Context, claims *auth.Claims) (*dto.SessionResponse, error)

	// ListTodos lists the todos of owner
	ListTodos(ctx context.Context, owner domain.Address) (*dto.TodoListResponse, error)

	// CreateTodo creates a todo for owner
	CreateTodo(ctx context.Context, owner domain.Address, req dto.TodoRequest) (*dto.TodoResponse, error)

	// UpdateTodo replaces a todo of owner
	UpdateTodo(ctx context.Context, owner domain.Address, id string, req dto.TodoRequest) (*dto.TodoResponse, error)

	// DeleteTodo deletes a todo of owner
	DeleteTodo(ctx context.Context, owner domain.Address, id string) (*dto.MessageResponse, error)

	// CompleteTodo marks a todo of owner as completed
	CompleteTodo(ctx context.Context, owner domain.Address, id string) (*dto.TodoResponse, error)

	// GetOwnedNFTs lists the reward tokens held by owner
	GetOwnedNFTs(ctx context.Context, owner domain.Address) (*dto.NFTListResponse, error)

	// GetRewards reports the mint eligibility of owner
	GetRewards(ctx context.Context, owner domain.Address) (*dto.RewardsResponse, error)

	// GetERC20Balance reads the reward ERC-20 balance of owner
	GetERC20Balance(ctx context.Context, owner domain.Address) (*dto.TokenBalanceResponse, error)

	// GetTransactionStatus reports the progress of a submitted transaction
	GetTransactionStatus(ctx context.Context, hash string, confirmations uint64) (*domain.TransactionStatus, error)
}

// Config holds the chain and sign-in values exposed by the API
type Config struct {
	ChainID   domain.ChainID
	Contracts domain.Contracts
	Domain    string
	Statement string
}

type executor struct {
	config  Config
	auth    auth.Service
	todos   todo.Service
	rewards rewards.Service
	chain   ethereum.EthereumClient
}

func NewExecutor(cfg Config, authService auth.Service, todos todo.Service, rewardsService rewards.Service, chain ethereum.EthereumClient) Executor {
	return &executor{
		config:  cfg,
		auth:    authService,
		todos:   todos,
		rewards: rewardsService,
		chain:   chain,
	}
}

func (e *executor) IssueNonce(ctx context.Context) (*dto.NonceResponse, error) {
	nonce, err := e.auth.IssueNonce()
	if err != nil {
		return nil, translateError(ctx, err, "Failed to issue nonce")
	}

	return &dto.NonceResponse{
		Nonce:     nonce,
		Domain:    e.config.Domain,
		Statement: e.config.Statement,
		ChainID:   e.config.ChainID,
	}, nil
}

func (e *executor) Verify(ctx context.Context, req dto.VerifyRequest) (*dto.SessionResponse, error) {
	session, err := e.auth.Verify(ctx, req.Message, req.Signature)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to sign in")
	}

	logger.InfoCtx(ctx, "Signed in", zap.String("address", session.Address.String()))

	return &dto.SessionResponse{
		Token:          session.Token,
		Address:        session.Address,
		DisplayAddress: session.Address.Truncate(0),
		ChainID:        session.ChainID,
		ExpiresAt:      session.ExpiresAt,
	}, nil
}

func (e *executor) GetSession(ctx context.Context, claims *auth.Claims) (*dto.SessionResponse, error) {
	if claims == nil {
		return nil, apierrors.NewUnauthorizedError("Not signed in")
	}

	resp := &dto.SessionResponse{
		Address:        claims.Address(),
		DisplayAddress: claims.Address().Truncate(0),
		ChainID:        domain.ChainID(claims.ChainID),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}

func (e *executor) ListTodos(ctx context.Context, owner domain.Address) (*dto.TodoListResponse, error) {
	todos, err := e.todos.List(ctx, owner)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to fetch todos")
	}
	return &dto.TodoListResponse{Todos: todos}, nil
}

func (e *executor) CreateTodo(ctx context.Context, owner domain.Address, req dto.TodoRequest) (*dto.TodoResponse, error) {
	created, err := e.todos.Create(ctx, owner, req.ToInput())
	if err != nil {
		return nil, translateError(ctx, err, "Failed to create todo")
	}
	return &dto.TodoResponse{Todo: *created}, nil
}

func (e *executor) UpdateTodo(ctx context.Context, owner domain.Address, id string, req dto.TodoRequest) (*dto.TodoResponse, error) {
	updated, err := e.todos.Update(ctx, owner, id, req.ToInput())
	if err != nil {
		return nil, translateError(ctx, err, "Failed to update todo")
	}
	return &dto.TodoResponse{Todo: *updated}, nil
}

func (e *executor) DeleteTodo(ctx context.Context, owner domain.Address, id string) (*dto.MessageResponse, error) {
	if err := e.todos.Delete(ctx, owner, id); err != nil {
		return nil, translateError(ctx, err, "Failed to delete todo")
	}
	return &dto.MessageResponse{Message: "Todo deleted successfully"}, nil
}

func (e *executor) CompleteTodo(ctx context.Context, owner domain.Address, id string) (*dto.TodoResponse, error) {
	completed, err := e.todos.MarkCompleted(ctx, owner, id)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to complete todo")
	}
	return &dto.TodoResponse{Todo: *completed}, nil
}

func (e *executor) GetOwnedNFTs(ctx context.Context, owner domain.Address) (*dto.NFTListResponse, error) {
	tokens, err := e.rewards.OwnedTokens(ctx, owner)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to fetch owned tokens")
	}

	return &dto.NFTListResponse{
		ChainID:  e.config.ChainID,
		Contract: e.config.Contracts.NFT,
		TokenIDs: tokens,
	}, nil
}

func (e *executor) GetRewards(ctx context.Context, owner domain.Address) (*dto.RewardsResponse, error) {
	status, err := e.rewards.Status(ctx, owner)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to compute rewards")
	}

	return &dto.RewardsResponse{
		Status:   *status,
		Contract: e.config.Contracts.NFT,
	}, nil
}

func (e *executor) GetERC20Balance(ctx context.Context, owner domain.Address) (*dto.TokenBalanceResponse, error) {
	balance, err := e.chain.ERC20Balance(ctx, e.config.Contracts.ERC20, owner)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to read token balance")
	}
	return dto.MapTokenBalanceToDTO(balance), nil
}

func (e *executor) GetTransactionStatus(ctx context.Context, hash string, confirmations uint64) (*domain.TransactionStatus, error) {
	status, err := e.chain.TransactionStatus(ctx, hash, confirmations)
	if err != nil {
		return nil, translateError(ctx, err, "Failed to get transaction status")
	}
	return status, nil
}

// translateError maps domain errors to API errors; anything else is logged and
// reported as an internal error with message
func translateError(ctx context.Context, err error, message string) *apierrors.APIError {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, domain.ErrInvalidFormat):
		return apierrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrTodoNotFound):
		return apierrors.NewNotFoundError("Todo not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return apierrors.NewNotFoundError("Transaction not found")
	case errors.Is(err, domain.ErrUnsupportedChain):
		return apierrors.NewBadRequestError("Unsupported chain", err.Error())
	case errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrNonceNotFound),
		errors.Is(err, domain.ErrSessionExpired):
		return apierrors.NewUnauthorizedError(message, err.Error())
	case errors.Is(err, domain.ErrChainUnavailable):
		logger.WarnCtx(ctx, "Blockchain node request failed", zap.Error(err), zap.String("message", message))
		return apierrors.NewServiceError(message, "blockchain node unavailable")
	default:
		logger.ErrorCtx(ctx, err, zap.String("message", message))
		return apierrors.NewInternalError(message)
	}
}
