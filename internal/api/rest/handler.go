package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modemobile/todo-rewards/internal/api/middleware"
	"github.com/modemobile/todo-rewards/internal/api/shared/dto"
	"github.com/modemobile/todo-rewards/internal/api/shared/executor"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/providers/ethereum"
)

// DefaultConfirmations is used when a transaction status request sets none
const DefaultConfirmations = uint64(2)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// GetNonce issues a single-use sign-in nonce
	// GET /api/v1/auth/nonce
	GetNonce(c *gin.Context)

	// Verify checks a signed sign-in message and returns a session token
	// POST /api/v1/auth/verify
	Verify(c *gin.Context)

	// GetSession describes the current session
	// GET /api/v1/auth/session
	GetSession(c *gin.Context)

	// ListTodos lists the todos of the signed-in account, incomplete first
	// GET /api/v1/todos
	ListTodos(c *gin.Context)

	// CreateTodo creates a todo
	// POST /api/v1/todos
	CreateTodo(c *gin.Context)

	// UpdateTodo replaces a todo
	// PUT /api/v1/todos/:id
	UpdateTodo(c *gin.Context)

	// DeleteTodo deletes a todo
	// DELETE /api/v1/todos/:id
	DeleteTodo(c *gin.Context)

	// CompleteTodo marks a todo as completed
	// POST /api/v1/todos/:id/complete
	CompleteTodo(c *gin.Context)

	// ListNFTs lists the reward tokens held by the signed-in account
	// GET /api/v1/nfts
	ListNFTs(c *gin.Context)

	// GetRewards reports the mint eligibility of the signed-in account
	// GET /api/v1/rewards
	GetRewards(c *gin.Context)

	// GetERC20Balance reads the reward token balance of the signed-in account
	// GET /api/v1/tokens/erc20
	GetERC20Balance(c *gin.Context)

	// GetTransactionStatus reports the confirmations of a mint transaction
	// GET /api/v1/transactions/:hash?confirmations=<0..64>
	GetTransactionStatus(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: "todo-rewards-api",
	})
}

// GetNonce issues a single-use sign-in nonce
func (h *handler) GetNonce(c *gin.Context) {
	response, err := h.executor.IssueNonce(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to issue nonce")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, response)
}

// Verify checks a signed sign-in message and returns a session token
func (h *handler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.Verify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSession describes the current session
func (h *handler) GetSession(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.GetSession(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err, "Failed to get session")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListTodos lists the todos of the signed-in account
func (h *handler) ListTodos(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.ListTodos(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to fetch todos")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateTodo creates a todo
func (h *handler) CreateTodo(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.CreateTodo(c.Request.Context(), account, req)
	if err != nil {
		respondError(c, err, "Failed to create todo")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateTodo replaces a todo
func (h *handler) UpdateTodo(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	response, err := h.executor.UpdateTodo(c.Request.Context(), account, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update todo")
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTodo deletes a todo
func (h *handler) DeleteTodo(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.DeleteTodo(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to delete todo")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CompleteTodo marks a todo as completed
func (h *handler) CompleteTodo(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.CompleteTodo(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to complete todo")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListNFTs lists the reward tokens held by the signed-in account
func (h *handler) ListNFTs(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.GetOwnedNFTs(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to fetch owned tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRewards reports the mint eligibility of the signed-in account
func (h *handler) GetRewards(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.GetRewards(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to compute rewards")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetERC20Balance reads the reward token balance of the signed-in account
func (h *handler) GetERC20Balance(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		respondUnauthorized(c, "Not signed in")
		return
	}

	response, err := h.executor.GetERC20Balance(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to read token balance")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTransactionStatus reports the confirmations of a mint transaction
func (h *handler) GetTransactionStatus(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		respondBadRequest(c, "Transaction hash is required")
		return
	}

	confirmations, err := parseConfirmations(c.Query("confirmations"))
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetTransactionStatus(c.Request.Context(), hash, confirmations)
	if err != nil {
		respondError(c, err, "Failed to get transaction status")
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseConfirmations parses the confirmations query parameter
func parseConfirmations(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultConfirmations, nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n > ethereum.MaxConfirmations {
		return 0, fmt.Errorf("%w: confirmations must be an integer between 0 and %d", domain.ErrInvalidFormat, ethereum.MaxConfirmations)
	}
	return n, nil
}
