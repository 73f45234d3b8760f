package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	// DeleteTransaction returns the removed transaction, or nil if none matched.
	DeleteTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateParams carries the fields of a new transaction as submitted by a client.
type CreateParams struct {
	Date        string   `validate:"required,datetime=2006-01-02"`
	Description string   `validate:"required"`
	Category    Category
	Amount      *float64 `validate:"required"`
}

// Validate checks required fields and the date format. Any category and any
// amount sign are accepted.
func (p CreateParams) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "datetime":
		return field + " must be a date formatted as YYYY-MM-DD"
	}

	return field + " is invalid"
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	date, err := ParseDate(params.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tx := &Transaction{
		Date:        date,
		Description: params.Description,
		Category:    params.Category,
		Amount:      *params.Amount,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// List returns every stored transaction in insertion order.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

// Delete removes the transaction with the given id. A missing transaction is
// not an error: the result is nil.
func (s *Service) Delete(ctx context.Context, rawID string) (*Transaction, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidID, rawID, err)
	}

	return s.repo.DeleteTransaction(ctx, id)
}
