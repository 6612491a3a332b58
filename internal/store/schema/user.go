package schema

import "time"

// User represents the users table - one row per wallet that signed in
type User struct {
	// Address is the checksummed wallet address
	Address string `gorm:"column:address;primaryKey;type:text"`
	// ChainID is the chain of the last sign-in
	ChainID int64 `gorm:"column:chain_id;not null"`
	// LastLoginAt is updated on every successful sign-in
	LastLoginAt time.Time `gorm:"column:last_login_at;not null;type:timestamptz"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
