package rewards

import (
	"context"
	"fmt"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/todo"
)

// Service reports reward tokens and mint eligibility
//
//go:generate mockgen -source=service.go -destination=../mocks/rewards_service.go -package=mocks -mock_names=Service=MockRewardsService
type Service interface {
	// OwnedTokens returns the decimal ids of the reward tokens held by owner
	OwnedTokens(ctx context.Context, owner domain.Address) ([]string, error)
	// Status combines completed tasks and owned tokens into the mint eligibility
	Status(ctx context.Context, owner domain.Address) (*Status, error)
}

type service struct {
	todos     todo.Service
	ownership TokenOwnership
}

// NewService creates a rewards service
func NewService(todos todo.Service, ownership TokenOwnership) Service {
	return &service{todos: todos, ownership: ownership}
}

func (s *service) OwnedTokens(ctx context.Context, owner domain.Address) ([]string, error) {
	tokens, err := s.ownership.OwnedTokens(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owned tokens: %w", err)
	}
	return tokens, nil
}

func (s *service) Status(ctx context.Context, owner domain.Address) (*Status, error) {
	completed, err := s.todos.CompletedCount(ctx, owner)
	if err != nil {
		return nil, err
	}

	tokens, err := s.OwnedTokens(ctx, owner)
	if err != nil {
		return nil, err
	}

	status := Eligibility(completed, len(tokens))
	return &status, nil
}
