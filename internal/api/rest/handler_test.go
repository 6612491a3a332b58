package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/api/rest"
	"github.com/modemobile/todo-rewards/internal/api/shared/dto"
	apierrors "github.com/modemobile/todo-rewards/internal/api/shared/errors"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/mocks"
	"github.com/modemobile/todo-rewards/internal/providers/ethereum"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
	"github.com/modemobile/todo-rewards/internal/rewards"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

const (
	testToken  = "session-token"
	testTodoID = "3f1c2a9e-8d4b-4c6e-9a7f-1b2c3d4e5f60"
)

var testAccount = domain.MustParseAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

type testAPIMocks struct {
	executor *mocks.MockAPIExecutor
	auth     *mocks.MockAuthService
	limiter  *mocks.MockRateLimiter
	router   *gin.Engine
}

func setupAPI(t *testing.T) *testAPIMocks {
	ctrl := gomock.NewController(t)
	tm := &testAPIMocks{
		executor: mocks.NewMockAPIExecutor(ctrl),
		auth:     mocks.NewMockAuthService(ctrl),
		limiter:  mocks.NewMockRateLimiter(ctrl),
		router:   gin.New(),
	}

	tm.limiter.EXPECT().Allow(gomock.Any()).Return(ratelimit.Decision{Allowed: true, Limit: 100, Remaining: 99}).AnyTimes()
	tm.auth.EXPECT().ValidateSession(testToken).Return(&auth.Claims{
		ChainID: int64(domain.ChainPolygonAmoy),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testAccount.String(),
			ExpiresAt: jwt.NewNumericDate(time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)),
		},
	}, nil).AnyTimes()

	rest.SetupRoutes(tm.router, rest.NewHandler(tm.executor), tm.auth, tm.limiter)
	return tm
}

func (tm *testAPIMocks) do(method, path, body string, signedIn bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if signedIn {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *apierrors.APIError {
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	tm := setupAPI(t)

	w := tm.do(http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGetNonce(t *testing.T) {
	tm := setupAPI(t)

	tm.executor.EXPECT().IssueNonce(gomock.Any()).Return(&dto.NonceResponse{
		Nonce:   "abcdefgh12345678",
		Domain:  "todo.example.com",
		ChainID: domain.ChainPolygonAmoy,
	}, nil)

	w := tm.do(http.MethodGet, "/api/v1/auth/nonce", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp dto.NonceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abcdefgh12345678", resp.Nonce)
	assert.Equal(t, domain.ChainPolygonAmoy, resp.ChainID)
}

func TestVerify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupAPI(t)

		tm.executor.EXPECT().
			Verify(gomock.Any(), dto.VerifyRequest{Message: "msg", Signature: "0xsig"}).
			Return(&dto.SessionResponse{Token: "new-token", Address: testAccount}, nil)

		w := tm.do(http.MethodPost, "/api/v1/auth/verify", `{"message":"msg","signature":"0xsig"}`, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "new-token")
	})

	t.Run("missing signature", func(t *testing.T) {
		tm := setupAPI(t)

		w := tm.do(http.MethodPost, "/api/v1/auth/verify", `{"message":"msg"}`, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		tm := setupAPI(t)

		w := tm.do(http.MethodPost, "/api/v1/auth/verify", `{`, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected signature", func(t *testing.T) {
		tm := setupAPI(t)

		tm.executor.EXPECT().
			Verify(gomock.Any(), gomock.Any()).
			Return(nil, apierrors.NewUnauthorizedError("Failed to sign in", "invalid signature"))

		w := tm.do(http.MethodPost, "/api/v1/auth/verify", `{"message":"msg","signature":"0xsig"}`, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("already signed in", func(t *testing.T) {
		tm := setupAPI(t)

		w := tm.do(http.MethodPost, "/api/v1/auth/verify", `{"message":"msg","signature":"0xsig"}`, true)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apierrors.ErrCodeConflict, decodeError(t, w).Code)
	})
}

func TestGetSession(t *testing.T) {
	tm := setupAPI(t)

	tm.executor.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, claims *auth.Claims) (*dto.SessionResponse, error) {
			assert.Equal(t, testAccount, claims.Address())
			return &dto.SessionResponse{Address: claims.Address(), DisplayAddress: claims.Address().Truncate(0)}, nil
		})

	w := tm.do(http.MethodGet, "/api/v1/auth/session", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xC02a...6Cc2")
}

func TestPrivateRoutesRequireSession(t *testing.T) {
	tm := setupAPI(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/session"},
		{http.MethodGet, "/api/v1/todos"},
		{http.MethodPost, "/api/v1/todos"},
		{http.MethodPut, "/api/v1/todos/" + testTodoID},
		{http.MethodDelete, "/api/v1/todos/" + testTodoID},
		{http.MethodPost, "/api/v1/todos/" + testTodoID + "/complete"},
		{http.MethodGet, "/api/v1/nfts"},
		{http.MethodGet, "/api/v1/rewards"},
		{http.MethodGet, "/api/v1/tokens/erc20"},
		{http.MethodGet, "/api/v1/transactions/0xabc"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := tm.do(route.method, route.path, "", false)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestTodos(t *testing.T) {
	todo := domain.Todo{
		ID:       testTodoID,
		Owner:    testAccount,
		Title:    "Write tests",
		Priority: domain.PriorityHigh,
	}

	t.Run("list", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().ListTodos(gomock.Any(), testAccount).Return(&dto.TodoListResponse{Todos: []domain.Todo{todo}}, nil)

		w := tm.do(http.MethodGet, "/api/v1/todos", "", true)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.TodoListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Todos, 1)
		assert.Equal(t, testTodoID, resp.Todos[0].ID)
	})

	t.Run("create", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			CreateTodo(gomock.Any(), testAccount, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Address, req dto.TodoRequest) (*dto.TodoResponse, error) {
				assert.Equal(t, "Write tests", req.Title)
				assert.Equal(t, "high", req.Priority)
				assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), req.DueDate.UTC())
				return &dto.TodoResponse{Todo: todo}, nil
			})

		w := tm.do(http.MethodPost, "/api/v1/todos", `{"title":"Write tests","priority":"high","dueDate":"2024-05-10T00:00:00Z"}`, true)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"todo"`)
	})

	t.Run("create invalid", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			CreateTodo(gomock.Any(), testAccount, gomock.Any()).
			Return(nil, apierrors.NewValidationError("invalid format: title is required"))

		w := tm.do(http.MethodPost, "/api/v1/todos", `{"priority":"high","dueDate":"2024-05-10T00:00:00Z"}`, true)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	t.Run("update not found", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			UpdateTodo(gomock.Any(), testAccount, testTodoID, gomock.Any()).
			Return(nil, apierrors.NewNotFoundError("Todo not found"))

		w := tm.do(http.MethodPut, "/api/v1/todos/"+testTodoID, `{"title":"x","priority":"low","dueDate":"2024-05-10T00:00:00Z"}`, true)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			DeleteTodo(gomock.Any(), testAccount, testTodoID).
			Return(&dto.MessageResponse{Message: "Todo deleted successfully"}, nil)

		w := tm.do(http.MethodDelete, "/api/v1/todos/"+testTodoID, "", true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Todo deleted successfully")
	})

	t.Run("complete", func(t *testing.T) {
		tm := setupAPI(t)
		completed := todo
		completed.Completed = true
		tm.executor.EXPECT().
			CompleteTodo(gomock.Any(), testAccount, testTodoID).
			Return(&dto.TodoResponse{Todo: completed}, nil)

		w := tm.do(http.MethodPost, "/api/v1/todos/"+testTodoID+"/complete", "", true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":true`)
	})

	t.Run("internal error", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().ListTodos(gomock.Any(), testAccount).Return(nil, assert.AnError)

		w := tm.do(http.MethodGet, "/api/v1/todos", "", true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apierrors.ErrCodeInternalError, decodeError(t, w).Code)
	})
}

func TestRewardRoutes(t *testing.T) {
	tm := setupAPI(t)

	tm.executor.EXPECT().GetOwnedNFTs(gomock.Any(), testAccount).Return(&dto.NFTListResponse{TokenIDs: []string{"1", "7"}}, nil)
	tm.executor.EXPECT().GetRewards(gomock.Any(), testAccount).Return(&dto.RewardsResponse{Status: rewards.Eligibility(3, 0)}, nil)
	tm.executor.EXPECT().GetERC20Balance(gomock.Any(), testAccount).Return(&dto.TokenBalanceResponse{Balance: "1000", Symbol: "MODE"}, nil)

	w := tm.do(http.MethodGet, "/api/v1/nfts", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tokenIds":["1","7"]`)

	w = tm.do(http.MethodGet, "/api/v1/rewards", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"canMint":true`)

	w = tm.do(http.MethodGet, "/api/v1/tokens/erc20", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"symbol":"MODE"`)
}

func TestGetTransactionStatus(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)

	t.Run("default confirmations", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			GetTransactionStatus(gomock.Any(), hash, rest.DefaultConfirmations).
			Return(&domain.TransactionStatus{Hash: hash, State: domain.TransactionPending, Required: 2}, nil)

		w := tm.do(http.MethodGet, "/api/v1/transactions/"+hash, "", true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"pending"`)
	})

	t.Run("explicit confirmations", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			GetTransactionStatus(gomock.Any(), hash, uint64(0)).
			Return(&domain.TransactionStatus{Hash: hash, State: domain.TransactionSuccess}, nil)

		w := tm.do(http.MethodGet, "/api/v1/transactions/"+hash+"?confirmations=0", "", true)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("confirmations at the chain client limit", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			GetTransactionStatus(gomock.Any(), hash, uint64(ethereum.MaxConfirmations)).
			Return(&domain.TransactionStatus{Hash: hash, State: domain.TransactionPending}, nil)

		w := tm.do(http.MethodGet, "/api/v1/transactions/"+hash+"?confirmations="+strconv.Itoa(ethereum.MaxConfirmations), "", true)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	for _, raw := range []string{strconv.Itoa(ethereum.MaxConfirmations + 1), "-1", "two"} {
		t.Run("invalid confirmations "+raw, func(t *testing.T) {
			tm := setupAPI(t)

			w := tm.do(http.MethodGet, "/api/v1/transactions/"+hash+"?confirmations="+raw, "", true)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
		})
	}

	t.Run("not found", func(t *testing.T) {
		tm := setupAPI(t)
		tm.executor.EXPECT().
			GetTransactionStatus(gomock.Any(), hash, rest.DefaultConfirmations).
			Return(nil, apierrors.NewNotFoundError("Transaction not found"))

		w := tm.do(http.MethodGet, "/api/v1/transactions/"+hash, "", true)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(mocks.NewMockAPIExecutor(ctrl)), mocks.NewMockAuthService(ctrl), limiter)

	limiter.EXPECT().Allow(gomock.Any()).Return(ratelimit.Decision{Allowed: false, Limit: 100, RetryAfter: 9 * time.Second})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/nonce", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "9", w.Header().Get("Retry-After"))

	// health is not rate limited
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
