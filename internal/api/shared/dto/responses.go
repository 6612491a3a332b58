package dto

import (
	"time"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/rewards"
)

// HealthResponse represents the health status of the API
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NonceResponse holds what a wallet needs to build a sign-in message
type NonceResponse struct {
	Nonce     string         `json:"nonce"`
	Domain    string         `json:"domain"`
	Statement string         `json:"statement,omitempty"`
	ChainID   domain.ChainID `json:"chainId"`
}

// SessionResponse describes a signed-in account. Token is only set right after sign-in.
type SessionResponse struct {
	Token          string         `json:"token,omitempty"`
	Address        domain.Address `json:"address"`
	DisplayAddress string         `json:"displayAddress"`
	ChainID        domain.ChainID `json:"chainId"`
	ExpiresAt      time.Time      `json:"expiresAt"`
}

// TodoResponse wraps a single todo
type TodoResponse struct {
	Todo domain.Todo `json:"todo"`
}

// TodoListResponse wraps the todo list of an account
type TodoListResponse struct {
	Todos []domain.Todo `json:"todos"`
}

// MessageResponse carries a human readable result
type MessageResponse struct {
	Message string `json:"message"`
}

// NFTListResponse lists the reward tokens held by an account
type NFTListResponse struct {
	ChainID  domain.ChainID `json:"chainId"`
	Contract domain.Address `json:"contract"`
	TokenIDs []string       `json:"tokenIds"`
}

// RewardsResponse is the mint eligibility of an account
type RewardsResponse struct {
	rewards.Status
	Contract domain.Address `json:"contract"`
}

// TokenBalanceResponse is an ERC-20 balance; amounts are decimal strings
type TokenBalanceResponse struct {
	Token            domain.Address `json:"token"`
	Owner            domain.Address `json:"owner"`
	Balance          string         `json:"balance"`
	BalanceFormatted string         `json:"balanceFormatted"`
	BalanceCompact   string         `json:"balanceCompact"`
	Decimals         uint8          `json:"decimals"`
	Symbol           string         `json:"symbol"`
}

// MapTokenBalanceToDTO maps a token balance to its response
func MapTokenBalanceToDTO(balance *domain.TokenBalance) *TokenBalanceResponse {
	resp := &TokenBalanceResponse{
		Token:            balance.Token,
		Owner:            balance.Owner,
		Balance:          "0",
		BalanceFormatted: balance.BalanceFormatted,
		BalanceCompact:   balance.BalanceCompact,
		Decimals:         balance.Decimals,
		Symbol:           balance.Symbol,
	}
	if balance.Balance != nil {
		resp.Balance = balance.Balance.String()
	}
	return resp
}
