package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/modemobile/todo-rewards/internal/api/middleware"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authService auth.Service, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth, no rate limit, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1", middleware.RateLimit(limiter))
	{
		// Sign-In with Ethereum
		v1.GET("/auth/nonce", handler.GetNonce)
		v1.POST("/auth/verify", middleware.GuestOnly(authService), handler.Verify)

		private := v1.Group("", middleware.Auth(authService))

		private.GET("/auth/session", handler.GetSession)

		// Todo endpoints
		private.GET("/todos", handler.ListTodos)
		private.POST("/todos", handler.CreateTodo)
		private.PUT("/todos/:id", handler.UpdateTodo)
		private.DELETE("/todos/:id", handler.DeleteTodo)
		private.POST("/todos/:id/complete", handler.CompleteTodo)

		// Reward endpoints
		private.GET("/nfts", handler.ListNFTs)
		private.GET("/rewards", handler.GetRewards)
		private.GET("/tokens/erc20", handler.GetERC20Balance)
		private.GET("/transactions/:hash", handler.GetTransactionStatus)
	}
}
