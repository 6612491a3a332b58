package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/todo"
)

// VerifyRequest carries a signed Sign-In with Ethereum message
type VerifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// Validate validates the request
func (r *VerifyRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	if strings.TrimSpace(r.Signature) == "" {
		return errors.New("signature is required")
	}
	return nil
}

// TodoRequest carries the fields of a created or updated todo
type TodoRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
}

// ToInput converts the request to the todo service input
func (r *TodoRequest) ToInput() todo.Input {
	return todo.Input{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    domain.Priority(strings.ToLower(r.Priority)),
		Completed:   r.Completed,
	}
}
