// Package summary derives dashboard metrics from a full list of transactions.
//
// Every function recomputes from scratch and leaves its input untouched.
// Dates are compared as calendar values: a transaction counts towards Daily
// when it falls on the same day as now, and towards Monthly when it falls in
// the same year and month.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// CategoryTotal is one slice of the breakdown chart.
type CategoryTotal struct {
	Category transaction.Category
	Amount   decimal.Decimal
}

type Summary struct {
	Total     decimal.Decimal
	Daily     decimal.Decimal
	Monthly   decimal.Decimal
	Breakdown []CategoryTotal
}

// Compute evaluates all metrics as of now.
func Compute(txs []transaction.Transaction, now time.Time) Summary {
	return Summary{
		Total:     Total(txs),
		Daily:     Daily(txs, now),
		Monthly:   Monthly(txs, now),
		Breakdown: Breakdown(txs),
	}
}

func Total(txs []transaction.Transaction) decimal.Decimal {
	return sum(txs, func(transaction.Transaction) bool { return true })
}

// Daily sums the transactions dated on now's calendar day.
func Daily(txs []transaction.Transaction, now time.Time) decimal.Decimal {
	today := transaction.DateOf(now)

	return sum(txs, func(tx transaction.Transaction) bool { return tx.Date.SameDay(today) })
}

// Monthly sums the transactions dated in now's year and month.
func Monthly(txs []transaction.Transaction, now time.Time) decimal.Decimal {
	today := transaction.DateOf(now)

	return sum(txs, func(tx transaction.Transaction) bool { return tx.Date.SameMonth(today) })
}

// Breakdown sums amounts per category, ordered by first appearance.
// Categories are used verbatim: "Food" and "food" are distinct.
func Breakdown(txs []transaction.Transaction) []CategoryTotal {
	out := []CategoryTotal{}
	index := make(map[transaction.Category]int)

	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)

		i, ok := index[tx.Category]
		if !ok {
			index[tx.Category] = len(out)
			out = append(out, CategoryTotal{Category: tx.Category, Amount: amount})

			continue
		}

		out[i].Amount = out[i].Amount.Add(amount)
	}

	return out
}

func sum(txs []transaction.Transaction, keep func(transaction.Transaction) bool) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if keep(tx) {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	return total
}
