package transaction

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput is returned when create params fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID is returned when an identifier cannot be parsed.
	ErrInvalidID = errors.New("invalid transaction id")
)

// Category groups expenses on the dashboard. The backend stores any value,
// the constants below are the ones offered by the dashboard form.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryOthers        Category = "Others"
)

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryOthers,
}

// Transaction represents a single expense record.
type Transaction struct {
	ID          uuid.UUID `db:"id"`
	Date        Date      `db:"date"`
	Description string    `db:"description"`
	Category    Category  `db:"category"`
	Amount      float64   `db:"amount"`
}
