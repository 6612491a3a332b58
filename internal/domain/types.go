package domain

import (
	"math/big"
	"strings"
	"time"
)

// EventType classifies a Transfer log by its endpoints
type EventType string

const (
	EventTypeTransfer EventType = "transfer"
	EventTypeMint     EventType = "mint"
	EventTypeBurn     EventType = "burn"
)

// TransferEventType determines the event type based on from/to addresses
func TransferEventType(from, to string) EventType {
	if from == "" || strings.EqualFold(from, ZeroAddress.String()) {
		return EventTypeMint
	}
	if to == "" || strings.EqualFold(to, ZeroAddress.String()) {
		return EventTypeBurn
	}
	return EventTypeTransfer
}

// TransferEvent is one ERC-721 ownership transfer.
// From and To are lowercase hex; TokenID is compared by its decimal form.
type TransferEvent struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	TokenID     *big.Int  `json:"token_id"`
	BlockNumber uint64    `json:"block_number"`
	TxHash      string    `json:"tx_hash,omitempty"`
	LogIndex    uint      `json:"log_index"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

// Valid reports whether the event carries all fields needed to track ownership
func (e TransferEvent) Valid() bool {
	return e.From != "" && e.To != "" && e.TokenID != nil
}

// TokenNumber returns the decimal token id
func (e TransferEvent) TokenNumber() string {
	if e.TokenID == nil {
		return ""
	}
	return e.TokenID.String()
}

// Type returns the mint/transfer/burn classification of the event
func (e TransferEvent) Type() EventType {
	return TransferEventType(e.From, e.To)
}

// TransferMessage is the normalized transfer published to NATS
type TransferMessage struct {
	Chain           ChainID   `json:"chain"`
	ContractAddress string    `json:"contract_address"`
	TokenNumber     string    `json:"token_number"`
	EventType       EventType `json:"event_type"`
	FromAddress     string    `json:"from_address"`
	ToAddress       string    `json:"to_address"`
	TxHash          string    `json:"tx_hash"`
	LogIndex        uint      `json:"log_index"`
	BlockNumber     uint64    `json:"block_number"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewTransferMessage converts a decoded event into its published form
func NewTransferMessage(chain ChainID, contract Address, e TransferEvent) TransferMessage {
	return TransferMessage{
		Chain:           chain,
		ContractAddress: contract.Lower(),
		TokenNumber:     e.TokenNumber(),
		EventType:       e.Type(),
		FromAddress:     e.From,
		ToAddress:       e.To,
		TxHash:          e.TxHash,
		LogIndex:        e.LogIndex,
		BlockNumber:     e.BlockNumber,
		Timestamp:       e.Timestamp,
	}
}

// Priority of a todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid checks the priority against the known levels
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Todo is a task owned by a wallet
type Todo struct {
	ID          string    `json:"id"`
	Owner       Address   `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TokenBalance is an ERC-20 balance with its display metadata
type TokenBalance struct {
	Token            Address  `json:"token"`
	Owner            Address  `json:"owner"`
	Balance          *big.Int `json:"balance"`
	BalanceFormatted string   `json:"balanceFormatted"`
	BalanceCompact   string   `json:"balanceCompact"`
	Decimals         uint8    `json:"decimals"`
	Symbol           string   `json:"symbol"`
}

// TransactionState is the lifecycle of a submitted transaction
type TransactionState string

const (
	TransactionPending  TransactionState = "pending"
	TransactionSuccess  TransactionState = "success"
	TransactionReverted TransactionState = "reverted"
)

// TransactionStatus reports how far a transaction has progressed
type TransactionStatus struct {
	Hash          string           `json:"hash"`
	State         TransactionState `json:"state"`
	BlockNumber   *uint64          `json:"blockNumber,omitempty"`
	Confirmations uint64           `json:"confirmations"`
	Required      uint64           `json:"required"`
}
