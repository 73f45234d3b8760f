package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/summary"
)

// Palette colours breakdown bars in order, wrapping around.
var Palette = []lipgloss.Color{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#A28FF8"}

const barGlyph = "█"

// barWidths scales each slice against the largest absolute amount. Any
// non-zero slice gets at least one cell.
func barWidths(items []summary.CategoryTotal, width int) []int {
	widths := make([]int, len(items))
	if width <= 0 {
		return widths
	}

	largest := decimal.Zero
	for _, it := range items {
		if a := it.Amount.Abs(); a.GreaterThan(largest) {
			largest = a
		}
	}

	if largest.IsZero() {
		return widths
	}

	for i, it := range items {
		a := it.Amount.Abs()
		if a.IsZero() {
			continue
		}

		w := int(a.Mul(decimal.NewFromInt(int64(width))).Div(largest).IntPart())
		widths[i] = max(w, 1)
	}

	return widths
}

// RenderBreakdown draws one horizontal bar per category.
func RenderBreakdown(items []summary.CategoryTotal, width int, f Formatter) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No spending to break down yet.")
	}

	labelWidth := 0
	for _, it := range items {
		labelWidth = max(labelWidth, lipgloss.Width(string(it.Category)))
	}

	widths := barWidths(items, width)

	var b strings.Builder
	for i, it := range items {
		bar := lipgloss.NewStyle().
			Foreground(Palette[i%len(Palette)]).
			Render(strings.Repeat(barGlyph, widths[i]))

		fmt.Fprintf(&b, "%-*s %s %s", labelWidth, it.Category, bar, f.Amount(it.Amount))

		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
