package schema

import (
	"time"

	"gorm.io/datatypes"
)

// TransferEventType represents the kind of ERC-721 transfer
type TransferEventType string

const (
	// TransferEventTypeMint indicates a transfer from the zero address
	TransferEventTypeMint TransferEventType = "mint"
	// TransferEventTypeTransfer indicates a transfer between two accounts
	TransferEventTypeTransfer TransferEventType = "transfer"
	// TransferEventTypeBurn indicates a transfer to the zero address
	TransferEventTypeBurn TransferEventType = "burn"
)

// TransferEvent represents the transfer_events table - Transfer logs of the reward contract
type TransferEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID identifies the network where the log was emitted
	ChainID int64 `gorm:"column:chain_id;not null"`
	// ContractAddress is the lowercase address of the emitting contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_transfer_events_contract_token"`
	// TokenNumber is the decimal token id (up to 78 digits)
	TokenNumber string            `gorm:"column:token_number;not null;type:numeric(78,0);index:idx_transfer_events_contract_token"`
	EventType   TransferEventType `gorm:"column:event_type;not null;type:text"`
	// FromAddress and ToAddress are lowercase hex
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	ToAddress   string `gorm:"column:to_address;not null;type:text;index:idx_transfer_events_to"`
	// TxHash and LogIndex identify the log; together they are unique
	TxHash      string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_transfer_events_tx_log"`
	LogIndex    uint   `gorm:"column:log_index;not null;uniqueIndex:idx_transfer_events_tx_log"`
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// Timestamp is the block time of the log
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Raw contains the published message as JSON
	Raw       datatypes.JSON `gorm:"column:raw;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TransferEvent model
func (TransferEvent) TableName() string {
	return "transfer_events"
}
