package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/store/schema"
)

type pgStore struct {
	CursorStore
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{
		CursorStore: NewCursorStore(db),
		db:          db,
	}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Users
// =============================================================================

// UpsertUser creates the user or refreshes its last login and chain
func (s *pgStore) UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error) {
	user := schema.User{
		Address:     input.Address,
		ChainID:     input.ChainID,
		LastLoginAt: input.LastLoginAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"chain_id":      input.ChainID,
			"last_login_at": input.LastLoginAt,
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Clauses(clause.Returning{}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

// GetUser retrieves a user by address
func (s *pgStore) GetUser(ctx context.Context, address string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// =============================================================================
// Todos
// =============================================================================

// ListTodos returns the most recently created todos of owner
func (s *pgStore) ListTodos(ctx context.Context, owner string, limit int) ([]schema.Todo, error) {
	var todos []schema.Todo
	query := s.db.WithContext(ctx).
		Where("owner_address = ?", owner).
		Order("created_at DESC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a todo of owner
func (s *pgStore) GetTodo(ctx context.Context, owner, id string) (*schema.Todo, error) {
	var todo schema.Todo
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_address = ?", id, owner).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// CreateTodo inserts a todo
func (s *pgStore) CreateTodo(ctx context.Context, input CreateTodoInput) (*schema.Todo, error) {
	todo := schema.Todo{
		ID:           input.ID,
		OwnerAddress: input.OwnerAddress,
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     input.Priority,
		CreatedAt:    input.CreatedAt,
		UpdatedAt:    input.CreatedAt,
	}

	if err := s.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo replaces the editable fields of a todo. completed_at follows the
// completed flag: it is set on the first completion and cleared on reopening.
func (s *pgStore) UpdateTodo(ctx context.Context, input UpdateTodoInput) (*schema.Todo, error) {
	var updated *schema.Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo schema.Todo
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND owner_address = ?", input.ID, input.OwnerAddress).
			First(&todo).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get todo: %w", err)
		}

		switch {
		case input.Completed && todo.CompletedAt == nil:
			completedAt := input.UpdatedAt.UTC()
			todo.CompletedAt = &completedAt
		case !input.Completed:
			todo.CompletedAt = nil
		}

		todo.Title = input.Title
		todo.Description = input.Description
		todo.DueDate = input.DueDate
		todo.Priority = input.Priority
		todo.Completed = input.Completed

		if err := tx.Save(&todo).Error; err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}

		updated = &todo
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTodo deletes a todo of owner
func (s *pgStore) DeleteTodo(ctx context.Context, owner, id string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_address = ?", id, owner).
		Delete(&schema.Todo{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CountCompletedTodos counts the completed todos of owner
func (s *pgStore) CountCompletedTodos(ctx context.Context, owner string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Todo{}).
		Where("owner_address = ? AND completed = ?", owner, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed todos: %w", err)
	}
	return count, nil
}

// =============================================================================
// Transfer events
// =============================================================================

// CreateTransferEvent inserts a Transfer log. A log seen before (same tx hash
// and log index) is left untouched and reported as not new.
func (s *pgStore) CreateTransferEvent(ctx context.Context, input CreateTransferEventInput) (bool, error) {
	event := schema.TransferEvent{
		ChainID:         input.ChainID,
		ContractAddress: input.ContractAddress,
		TokenNumber:     input.TokenNumber,
		EventType:       input.EventType,
		FromAddress:     input.FromAddress,
		ToAddress:       input.ToAddress,
		TxHash:          input.TxHash,
		LogIndex:        input.LogIndex,
		BlockNumber:     input.BlockNumber,
		Timestamp:       input.Timestamp,
		Raw:             input.Raw,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(&event)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create transfer event: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		logger.DebugCtx(ctx, "Transfer event already stored",
			zap.String("txHash", input.TxHash),
			zap.Uint("logIndex", input.LogIndex))
		return false, nil
	}

	return true, nil
}

// ListTransferEvents returns every transfer of the tokens the account has ever
// received, so that the latest holder of each token can be resolved.
func (s *pgStore) ListTransferEvents(ctx context.Context, filter TransferEventFilter) ([]schema.TransferEvent, error) {
	query := s.db.WithContext(ctx).
		Where("chain_id = ? AND contract_address = ?", filter.ChainID, filter.ContractAddress)

	if filter.Account != "" {
		received := s.db.WithContext(ctx).Model(&schema.TransferEvent{}).
			Select("token_number").
			Where("chain_id = ? AND contract_address = ? AND to_address = ?", filter.ChainID, filter.ContractAddress, filter.Account)
		query = query.Where("token_number IN (?)", received)
	}

	var events []schema.TransferEvent
	err := query.
		Order("block_number ASC").
		Order("log_index ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer events: %w", err)
	}

	return events, nil
}
