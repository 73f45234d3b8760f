package view

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/spendly/internal/summary"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

func TestFormatter_Amount(t *testing.T) {
	f := NewFormatter("₹", language.English)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Zero", in: "0", want: "₹0.00"},
		{name: "Grouping", in: "1234.5", want: "₹1,234.50"},
		{name: "Negative", in: "-5", want: "-₹5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Amount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-05-02", FormatDate(transaction.NewDate(2024, time.May, 2)))
	assert.Equal(t, "-", FormatDate(transaction.Date{}))
}

func TestBarWidths(t *testing.T) {
	items := []summary.CategoryTotal{
		{Category: "Food", Amount: decimal.NewFromInt(30)},
		{Category: "Transport", Amount: decimal.NewFromInt(5)},
		{Category: "Refund", Amount: decimal.NewFromInt(-15)},
		{Category: "Free", Amount: decimal.Zero},
		{Category: "Gum", Amount: decimal.RequireFromString("0.01")},
	}

	assert.Equal(t, []int{30, 5, 15, 0, 1}, barWidths(items, 30))
	assert.Equal(t, []int{0, 0, 0, 0, 0}, barWidths(items, 0))
}

func TestRenderBreakdown(t *testing.T) {
	f := NewFormatter("₹", language.English)

	t.Run("Empty", func(t *testing.T) {
		assert.Contains(t, RenderBreakdown(nil, 20, f), "No spending")
	})

	t.Run("OneRowPerCategory", func(t *testing.T) {
		out := RenderBreakdown([]summary.CategoryTotal{
			{Category: "Food", Amount: decimal.NewFromInt(30)},
			{Category: "Transport", Amount: decimal.NewFromInt(5)},
		}, 30, f)

		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 2)
		assert.Contains(t, lines[0], "Food")
		assert.Contains(t, lines[0], "₹30.00")
		assert.Contains(t, lines[1], "Transport")
		assert.Contains(t, lines[1], "₹5.00")
		assert.Equal(t, 35, strings.Count(out, barGlyph))
	})
}
