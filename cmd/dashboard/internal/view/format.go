package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

const defaultRequestTimeout = 5 * time.Second

// Formatter renders amounts with a currency symbol and locale digit grouping.
type Formatter struct {
	currency string
	printer  *message.Printer
}

func NewFormatter(currency string, tag language.Tag) Formatter {
	return Formatter{
		currency: currency,
		printer:  message.NewPrinter(tag),
	}
}

// Amount formats d with two fraction digits, e.g. "₹1,234.50" or "-₹5.00".
func (f Formatter) Amount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	return sign + f.currency + f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Float formats a raw transaction amount.
func (f Formatter) Float(v float64) string {
	return f.Amount(decimal.NewFromFloat(v))
}

// FormatDate renders a transaction date as YYYY-MM-DD, or "-" when unset.
func FormatDate(d transaction.Date) string {
	if d.IsZero() {
		return "-"
	}

	return d.String()
}

// RequestCtx returns a context bounded by timeout, falling back to the
// default when timeout is not positive.
func RequestCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(context.Background(), timeout)
}
