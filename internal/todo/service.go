package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/adapter"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/store"
	"github.com/modemobile/todo-rewards/internal/store/schema"
)

const (
	MaxTitleLength = 200

	defaultListLimit = 20
	defaultCacheTTL  = time.Minute
	defaultCacheSize = 1000
)

// Config holds the todo service configuration
type Config struct {
	// ListLimit caps the number of todos returned by List
	ListLimit int
	// CacheTTL is how long a listed page is served from memory
	CacheTTL time.Duration
	// CacheSize bounds the number of owners with a cached page
	CacheSize int
}

// Input holds the editable fields of a todo
type Input struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	Priority    domain.Priority `json:"priority"`
	Completed   bool            `json:"completed"`
}

// Validate checks the fields of a todo
func (in Input) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidFormat)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidFormat, MaxTitleLength)
	}
	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", domain.ErrInvalidFormat)
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("%w: priority must be one of low, medium, high", domain.ErrInvalidFormat)
	}
	return nil
}

// Service manages the todos of signed-in wallets
//
//go:generate mockgen -source=service.go -destination=../mocks/todo_service.go -package=mocks -mock_names=Service=MockTodoService
type Service interface {
	// List returns up to ListLimit of the newest todos, incomplete ones first
	List(ctx context.Context, owner domain.Address) ([]domain.Todo, error)
	// Create adds a todo; Completed is ignored
	Create(ctx context.Context, owner domain.Address, input Input) (*domain.Todo, error)
	// Update replaces a todo
	Update(ctx context.Context, owner domain.Address, id string, input Input) (*domain.Todo, error)
	// Delete removes a todo
	Delete(ctx context.Context, owner domain.Address, id string) error
	// MarkCompleted completes a todo, keeping its other fields
	MarkCompleted(ctx context.Context, owner domain.Address, id string) (*domain.Todo, error)
	// CompletedCount counts the completed todos of owner
	CompletedCount(ctx context.Context, owner domain.Address) (int, error)
	// Close drops the list cache
	Close()
}

type service struct {
	config Config
	store  store.Store
	clock  adapter.Clock
	cache  *expirable.LRU[string, []domain.Todo]

	// mu guards the generations; a page read before the owner's latest
	// write must not be cached
	mu          sync.Mutex
	seq         uint64
	floor       uint64
	generations *lru.Cache[string, uint64]
}

// NewService creates a todo service
func NewService(cfg Config, store store.Store, clock adapter.Clock) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	s := &service{
		config: cfg,
		store:  store,
		clock:  clock,
		cache:  expirable.NewLRU[string, []domain.Todo](cfg.CacheSize, nil, cfg.CacheTTL),
	}
	// owners whose generation is evicted fall back to the highest evicted one
	s.generations, _ = lru.NewWithEvict[string, uint64](cfg.CacheSize, func(_ string, gen uint64) {
		if gen > s.floor {
			s.floor = gen
		}
	})
	return s
}

// List returns up to ListLimit of the newest todos, incomplete ones first
func (s *service) List(ctx context.Context, owner domain.Address) ([]domain.Todo, error) {
	key := owner.Lower()
	if todos, ok := s.cache.Get(key); ok {
		logger.DebugCtx(ctx, "Serving todos from cache", zap.String("owner", owner.String()))
		return cloneTodos(todos), nil
	}

	gen := s.generation(key)

	rows, err := s.store.ListTodos(ctx, owner.String(), s.config.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(rows))
	for _, row := range rows {
		if !row.Completed {
			todos = append(todos, mapTodo(row))
		}
	}
	for _, row := range rows {
		if row.Completed {
			todos = append(todos, mapTodo(row))
		}
	}

	s.mu.Lock()
	if s.generationLocked(key) == gen {
		s.cache.Add(key, todos)
	} else {
		logger.DebugCtx(ctx, "Todos changed while listing, not caching", zap.String("owner", owner.String()))
	}
	s.mu.Unlock()

	return cloneTodos(todos), nil
}

// Create adds a todo
func (s *service) Create(ctx context.Context, owner domain.Address, input Input) (*domain.Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	row, err := s.store.CreateTodo(ctx, store.CreateTodoInput{
		ID:           uuid.NewString(),
		OwnerAddress: owner.String(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		DueDate:      input.DueDate.UTC(),
		Priority:     string(input.Priority),
		CreatedAt:    s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	s.invalidate(owner)

	todo := mapTodo(*row)
	return &todo, nil
}

// Update replaces a todo
func (s *service) Update(ctx context.Context, owner domain.Address, id string, input Input) (*domain.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	row, err := s.store.UpdateTodo(ctx, store.UpdateTodoInput{
		ID:           id,
		OwnerAddress: owner.String(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		DueDate:      input.DueDate.UTC(),
		Priority:     string(input.Priority),
		Completed:    input.Completed,
		UpdatedAt:    s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	s.invalidate(owner)

	todo := mapTodo(*row)
	return &todo, nil
}

// Delete removes a todo
func (s *service) Delete(ctx context.Context, owner domain.Address, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	deleted, err := s.store.DeleteTodo(ctx, owner.String(), id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	s.invalidate(owner)

	return nil
}

// MarkCompleted completes a todo, keeping its other fields
func (s *service) MarkCompleted(ctx context.Context, owner domain.Address, id string) (*domain.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	row, err := s.store.GetTodo(ctx, owner.String(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	if row.Completed {
		todo := mapTodo(*row)
		return &todo, nil
	}

	return s.Update(ctx, owner, id, Input{
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Priority:    domain.Priority(row.Priority),
		Completed:   true,
	})
}

// CompletedCount counts the completed todos of owner
func (s *service) CompletedCount(ctx context.Context, owner domain.Address) (int, error) {
	count, err := s.store.CountCompletedTodos(ctx, owner.String())
	if err != nil {
		return 0, fmt.Errorf("failed to count completed todos: %w", err)
	}
	return int(count), nil
}

// Close drops the list cache
func (s *service) Close() {
	s.cache.Purge()
}

func (s *service) invalidate(owner domain.Address) {
	key := owner.Lower()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.generations.Add(key, s.seq)
	s.cache.Remove(key)
}

func (s *service) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generationLocked(key)
}

func (s *service) generationLocked(key string) uint64 {
	if gen, ok := s.generations.Peek(key); ok {
		return gen
	}
	return s.floor
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Join(fmt.Errorf("%w: todo id %q", domain.ErrInvalidFormat, id), err)
	}
	return nil
}

func mapTodo(row schema.Todo) domain.Todo {
	return domain.Todo{
		ID:          row.ID,
		Owner:       domain.Address(row.OwnerAddress),
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Priority:    domain.Priority(row.Priority),
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func cloneTodos(todos []domain.Todo) []domain.Todo {
	return append(make([]domain.Todo, 0, len(todos)), todos...)
}
