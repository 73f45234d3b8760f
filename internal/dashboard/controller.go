// Package dashboard owns the client-side state of the expense dashboard: the
// locally cached transaction list and the pending "add expense" form.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendly/internal/client"
	"github.com/MrJamesThe3rd/spendly/internal/summary"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

var (
	// ErrIncompleteForm is returned by Submit when amount or date is empty.
	ErrIncompleteForm = errors.New("amount and date are required")
	// ErrInvalidAmount is returned by Submit when the amount is not a number.
	ErrInvalidAmount = errors.New("amount is not a number")
	// ErrSubmitInFlight is returned by Submit while a previous submit is pending.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

//go:generate mockgen -source=controller.go -destination=client_mock.go -package=dashboard
type Client interface {
	List(ctx context.Context) ([]transaction.Transaction, error)
	Create(ctx context.Context, req client.CreateRequest) (*transaction.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
}

// Form holds the raw values of the add-expense form.
type Form struct {
	Date        string
	Description string
	Category    transaction.Category
	Amount      string
}

// DefaultForm is the empty form with the category preselected.
func DefaultForm() Form {
	return Form{Category: transaction.CategoryFood}
}

// State is a point-in-time copy of the controller, ready for rendering.
type State struct {
	Transactions []transaction.Transaction
	Form         Form
	Summary      summary.Summary
	Submitting   bool
}

type Controller struct {
	client Client
	logger *slog.Logger
	now    func() time.Time

	mu           sync.Mutex
	transactions []transaction.Transaction
	form         Form
	submitting   bool
}

type Option func(*Controller)

// WithClock overrides the clock used for the daily and monthly totals.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(c Client, logger *slog.Logger, opts ...Option) *Controller {
	ctrl := &Controller{
		client: c,
		logger: logger,
		now:    time.Now,
		form:   DefaultForm(),
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	return ctrl
}

// Load fetches the full list once and replaces the local copy. On failure the
// local list is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	txs, err := c.client.List(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "error fetching transactions", "error", err)
		return err
	}

	c.mu.Lock()
	c.transactions = slices.Clone(txs)
	c.mu.Unlock()

	return nil
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.form
}

func (c *Controller) SetForm(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = f
}

// Submit posts the current form. The server-returned record is appended to
// the local list only after the server confirms it, and the form is reset.
// On any failure the form is kept as it is so the user can retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	form := c.form
	if strings.TrimSpace(form.Amount) == "" || strings.TrimSpace(form.Date) == "" {
		c.mu.Unlock()
		return ErrIncompleteForm
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(form.Amount), 64)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidAmount, form.Amount)
	}

	c.submitting = true
	c.mu.Unlock()

	created, err := c.client.Create(ctx, client.CreateRequest{
		Date:        strings.TrimSpace(form.Date),
		Description: form.Description,
		Category:    string(form.Category),
		Amount:      amount,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitting = false

	if err != nil {
		c.logger.ErrorContext(ctx, "error adding transaction", "error", err)
		return err
	}

	c.transactions = append(c.transactions, *created)
	c.form = DefaultForm()

	return nil
}

// Delete removes a transaction on the server and then drops it from the local
// list without re-fetching.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.client.Delete(ctx, id); err != nil {
		c.logger.ErrorContext(ctx, "error deleting transaction", "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]transaction.Transaction, 0, len(c.transactions))
	for _, tx := range c.transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	c.transactions = kept

	return nil
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	txs := slices.Clone(c.transactions)

	return State{
		Transactions: txs,
		Form:         c.form,
		Summary:      summary.Compute(txs, c.now()),
		Submitting:   c.submitting,
	}
}
