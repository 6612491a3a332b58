package executor_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/api/shared/dto"
	apierrors "github.com/modemobile/todo-rewards/internal/api/shared/errors"
	"github.com/modemobile/todo-rewards/internal/api/shared/executor"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/mocks"
	"github.com/modemobile/todo-rewards/internal/rewards"
	"github.com/modemobile/todo-rewards/internal/todo"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	testAccount = domain.MustParseAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	testConfig  = executor.Config{
		ChainID: domain.ChainPolygonAmoy,
		Contracts: domain.Contracts{
			NFT:   domain.MustParseAddress("0x8E1096fd5C8Ca1EFdC1BC2F64Ae439E0888b1A46"),
			ERC20: domain.MustParseAddress("0xf02f35bF1C8D2c3a1e7255FD9AddC8F2182e0627"),
		},
		Domain:    "todo.example.com",
		Statement: "Sign in",
	}
)

type testExecutorMocks struct {
	auth     *mocks.MockAuthService
	todos    *mocks.MockTodoService
	rewards  *mocks.MockRewardsService
	chain    *mocks.MockEthereumClient
	executor executor.Executor
}

func setupExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		auth:    mocks.NewMockAuthService(ctrl),
		todos:   mocks.NewMockTodoService(ctrl),
		rewards: mocks.NewMockRewardsService(ctrl),
		chain:   mocks.NewMockEthereumClient(ctrl),
	}
	tm.executor = executor.NewExecutor(testConfig, tm.auth, tm.todos, tm.rewards, tm.chain)
	return tm
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
}

func TestIssueNonce(t *testing.T) {
	tm := setupExecutor(t)

	tm.auth.EXPECT().IssueNonce().Return("abcdefgh12345678", nil)

	resp, err := tm.executor.IssueNonce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh12345678", resp.Nonce)
	assert.Equal(t, "todo.example.com", resp.Domain)
	assert.Equal(t, domain.ChainPolygonAmoy, resp.ChainID)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.auth.EXPECT().Verify(ctx, "msg", "0xsig").Return(&auth.Session{
			Token:     "token",
			Address:   testAccount,
			ChainID:   domain.ChainPolygonAmoy,
			ExpiresAt: expires,
		}, nil)

		resp, err := tm.executor.Verify(ctx, dto.VerifyRequest{Message: "msg", Signature: "0xsig"})
		require.NoError(t, err)
		assert.Equal(t, "token", resp.Token)
		assert.Equal(t, "0xC02a...6Cc2", resp.DisplayAddress)
		assert.Equal(t, expires, resp.ExpiresAt)
	})

	tests := []struct {
		name string
		err  error
		code apierrors.ErrorCode
	}{
		{name: "bad signature", err: fmt.Errorf("%w: mismatch", domain.ErrInvalidSignature), code: apierrors.ErrCodeUnauthorized},
		{name: "unknown nonce", err: domain.ErrNonceNotFound, code: apierrors.ErrCodeUnauthorized},
		{name: "malformed message", err: fmt.Errorf("%w: missing nonce", domain.ErrInvalidFormat), code: apierrors.ErrCodeValidationFailed},
		{name: "unsupported chain", err: domain.ErrUnsupportedChain, code: apierrors.ErrCodeBadRequest},
		{name: "store failure", err: errors.New("failed to record login"), code: apierrors.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupExecutor(t)
			tm.auth.EXPECT().Verify(ctx, "msg", "0xsig").Return(nil, tt.err)

			_, err := tm.executor.Verify(ctx, dto.VerifyRequest{Message: "msg", Signature: "0xsig"})
			requireAPIError(t, err, tt.code)
		})
	}
}

func TestGetSession(t *testing.T) {
	tm := setupExecutor(t)
	expires := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	resp, err := tm.executor.GetSession(context.Background(), &auth.Claims{
		ChainID: int64(domain.ChainPolygonAmoy),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testAccount.String(),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	assert.Equal(t, testAccount, resp.Address)
	assert.Equal(t, domain.ChainPolygonAmoy, resp.ChainID)
	assert.Equal(t, expires, resp.ExpiresAt.UTC())

	_, err = tm.executor.GetSession(context.Background(), nil)
	requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
}

func TestTodos(t *testing.T) {
	ctx := context.Background()
	id := "3f1c2a9e-8d4b-4c6e-9a7f-1b2c3d4e5f60"
	item := domain.Todo{ID: id, Owner: testAccount, Title: "Write tests"}
	req := dto.TodoRequest{Title: "Write tests", Priority: "HIGH", DueDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)}

	t.Run("list", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().List(ctx, testAccount).Return([]domain.Todo{item}, nil)

		resp, err := tm.executor.ListTodos(ctx, testAccount)
		require.NoError(t, err)
		assert.Equal(t, []domain.Todo{item}, resp.Todos)
	})

	t.Run("create normalises priority", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().
			Create(ctx, testAccount, todo.Input{Title: req.Title, Priority: domain.PriorityHigh, DueDate: req.DueDate}).
			Return(&item, nil)

		resp, err := tm.executor.CreateTodo(ctx, testAccount, req)
		require.NoError(t, err)
		assert.Equal(t, item, resp.Todo)
	})

	t.Run("create invalid", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().Create(ctx, testAccount, gomock.Any()).Return(nil, fmt.Errorf("%w: title is required", domain.ErrInvalidFormat))

		_, err := tm.executor.CreateTodo(ctx, testAccount, dto.TodoRequest{})
		requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	})

	t.Run("update not found", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().Update(ctx, testAccount, id, gomock.Any()).Return(nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id))

		_, err := tm.executor.UpdateTodo(ctx, testAccount, id, req)
		requireAPIError(t, err, apierrors.ErrCodeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().Delete(ctx, testAccount, id).Return(nil)

		resp, err := tm.executor.DeleteTodo(ctx, testAccount, id)
		require.NoError(t, err)
		assert.Equal(t, "Todo deleted successfully", resp.Message)
	})

	t.Run("complete", func(t *testing.T) {
		tm := setupExecutor(t)
		completed := item
		completed.Completed = true
		tm.todos.EXPECT().MarkCompleted(ctx, testAccount, id).Return(&completed, nil)

		resp, err := tm.executor.CompleteTodo(ctx, testAccount, id)
		require.NoError(t, err)
		assert.True(t, resp.Todo.Completed)
	})

	t.Run("store failure", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().List(ctx, testAccount).Return(nil, errors.New("db down"))

		_, err := tm.executor.ListTodos(ctx, testAccount)
		requireAPIError(t, err, apierrors.ErrCodeInternalError)
	})
}

func TestRewards(t *testing.T) {
	ctx := context.Background()

	t.Run("owned nfts", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.rewards.EXPECT().OwnedTokens(ctx, testAccount).Return([]string{"3"}, nil)

		resp, err := tm.executor.GetOwnedNFTs(ctx, testAccount)
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, resp.TokenIDs)
		assert.Equal(t, testConfig.Contracts.NFT, resp.Contract)
	})

	t.Run("status", func(t *testing.T) {
		tm := setupExecutor(t)
		status := rewards.Eligibility(4, 1)
		tm.rewards.EXPECT().Status(ctx, testAccount).Return(&status, nil)

		resp, err := tm.executor.GetRewards(ctx, testAccount)
		require.NoError(t, err)
		assert.True(t, resp.CanMint)
		assert.Equal(t, 2, resp.EligibleTasks)
	})
}

func TestGetERC20Balance(t *testing.T) {
	ctx := context.Background()
	tm := setupExecutor(t)

	balance, _ := new(big.Int).SetString("123456789000000000000000", 10)
	tm.chain.EXPECT().ERC20Balance(ctx, testConfig.Contracts.ERC20, testAccount).Return(&domain.TokenBalance{
		Token:            testConfig.Contracts.ERC20,
		Owner:            testAccount,
		Balance:          balance,
		BalanceFormatted: "123456.789",
		BalanceCompact:   "123.45K",
		Decimals:         18,
		Symbol:           "MODE",
	}, nil)

	resp, err := tm.executor.GetERC20Balance(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, "123456789000000000000000", resp.Balance)
	assert.Equal(t, "123.45K", resp.BalanceCompact)
	assert.Equal(t, "MODE", resp.Symbol)
}

func TestGetTransactionStatus(t *testing.T) {
	ctx := context.Background()
	tm := setupExecutor(t)

	tm.chain.EXPECT().TransactionStatus(ctx, "0xabc", uint64(2)).Return(nil, fmt.Errorf("%w: 0xabc", domain.ErrInvalidFormat))
	_, err := tm.executor.GetTransactionStatus(ctx, "0xabc", 2)
	requireAPIError(t, err, apierrors.ErrCodeValidationFailed)

	tm.chain.EXPECT().TransactionStatus(ctx, "0xdef", uint64(2)).Return(nil, domain.ErrTransactionNotFound)
	_, err = tm.executor.GetTransactionStatus(ctx, "0xdef", 2)
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestChainFailuresAreServiceErrors(t *testing.T) {
	ctx := context.Background()
	chainErr := fmt.Errorf("%w: failed to call balanceOf: dial tcp: connection refused", domain.ErrChainUnavailable)

	t.Run("erc20 balance", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.chain.EXPECT().ERC20Balance(ctx, testConfig.Contracts.ERC20, testAccount).Return(nil, chainErr)

		_, err := tm.executor.GetERC20Balance(ctx, testAccount)
		requireAPIError(t, err, apierrors.ErrCodeServiceError)

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode())
	})

	t.Run("transaction status", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.chain.EXPECT().TransactionStatus(ctx, "0xabc", uint64(2)).Return(nil, chainErr)

		_, err := tm.executor.GetTransactionStatus(ctx, "0xabc", 2)
		requireAPIError(t, err, apierrors.ErrCodeServiceError)
	})

	t.Run("owned nfts", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.rewards.EXPECT().OwnedTokens(ctx, testAccount).Return(nil, fmt.Errorf("failed to resolve owned tokens: %w", chainErr))

		_, err := tm.executor.GetOwnedNFTs(ctx, testAccount)
		requireAPIError(t, err, apierrors.ErrCodeServiceError)
	})

	t.Run("store failures stay internal", func(t *testing.T) {
		tm := setupExecutor(t)
		tm.todos.EXPECT().List(ctx, testAccount).Return(nil, errors.New("connection reset"))

		_, err := tm.executor.ListTodos(ctx, testAccount)
		requireAPIError(t, err, apierrors.ErrCodeInternalError)
	})
}
