package view

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendly/internal/client"
	"github.com/MrJamesThe3rd/spendly/internal/dashboard"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type dashState int

const (
	dashStateBrowse dashState = iota
	dashStateAdding
)

const (
	emptyTableText    = "No transactions added yet."
	defaultChartWidth = 40
	minChartWidth     = 10
	maxChartWidth     = 60
	minTableHeight    = 5
)

type Options struct {
	Title     string
	Formatter Formatter
	Timeout   time.Duration
}

// DashboardModel renders the summary cards, the category breakdown and the
// transaction table, and drives the add-expense form.
type DashboardModel struct {
	CommonModel
	ctrl *dashboard.Controller
	opts Options

	state   dashState
	table   table.Model
	form    *huh.Form
	fields  *dashboard.Form
	loading bool
	status  string
}

var _ View = DashboardModel{}

func NewDashboardModel(ctrl *dashboard.Controller, opts Options) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 30},
		{Title: "Category", Width: 15},
		{Title: "Amount", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if opts.Title == "" {
		opts.Title = "Expense Tracker"
	}

	return DashboardModel{
		ctrl:    ctrl,
		opts:    opts,
		table:   t,
		loading: true,
	}
}

func (m DashboardModel) Title() string { return m.opts.Title }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashStateAdding {
		return "Enter/Tab: navigate form | Esc: cancel"
	}

	return "a: add expense | d: delete selected | r: reload | q: quit"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.status = ""

		if msg.err != nil {
			m.status = fmt.Sprintf("Error fetching transactions: %v", msg.err)
		}

		m.refreshTable()

		return m, nil

	case submittedMsg:
		m.state = dashStateBrowse
		m.form = nil
		m.fields = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = submitStatus(msg.err)
			return m, nil
		}

		m.status = "Expense added."
		m.refreshTable()

		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting transaction: %v", msg.err)
			return m, nil
		}

		m.status = "Transaction deleted."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(m.tableHeight())

		return m, nil
	}

	switch m.state {
	case dashStateBrowse:
		return m.updateBrowse(msg)
	case dashStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.startAdding()
		case "d":
			return m, m.deleteSelectedCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) startAdding() (tea.Model, tea.Cmd) {
	fields := m.ctrl.Form()
	if fields.Category == "" {
		fields.Category = transaction.CategoryFood
	}

	m.fields = &fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.Date),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.Description),

			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(transaction.Categories...)...).
				Value(&m.fields.Category),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.Amount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = dashStateAdding
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		// Keep whatever was typed so the next "a" resumes it.
		m.ctrl.SetForm(*m.fields)
		m.state = dashStateBrowse
		m.form = nil
		m.fields = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.ctrl.SetForm(*m.fields)

	return m, m.submitCmd()
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	state := m.ctrl.Snapshot()
	f := m.opts.Formatter

	title := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.opts.Title)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Expenses", f.Amount(state.Summary.Total)),
		card("Today's Expenses", f.Amount(state.Summary.Daily)),
		card("This Month", f.Amount(state.Summary.Monthly)),
	)

	chart := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render("Expense Breakdown\n\n" + RenderBreakdown(state.Summary.Breakdown, m.chartWidth(), f))

	var transactions string
	if len(state.Transactions) == 0 {
		transactions = lipgloss.NewStyle().Faint(true).Padding(1).Render(emptyTableText)
	} else {
		transactions = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, cards, chart, transactions)

	if m.state == dashStateAdding && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Expense\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	help := lipgloss.NewStyle().Faint(true).PaddingTop(1).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

// chartWidth leaves room for the category label and the amount next to
// each bar. Before the first WindowSizeMsg the default width is used.
func (m DashboardModel) chartWidth() int {
	if m.Width <= 0 {
		return defaultChartWidth
	}

	return min(max(m.Width-40, minChartWidth), maxChartWidth)
}

func (m DashboardModel) tableHeight() int {
	return max(m.Height-20, minTableHeight)
}

func card(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		MarginRight(1).
		Width(22).
		Render(label + "\n" + activeStyle(value))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func submitStatus(err error) string {
	switch {
	case errors.Is(err, dashboard.ErrIncompleteForm):
		return "Amount and date are required."
	case errors.Is(err, dashboard.ErrInvalidAmount):
		return "Amount must be a number."
	case errors.Is(err, dashboard.ErrSubmitInFlight):
		return "Still saving the previous expense..."
	case client.IsAPIError(err, http.StatusBadRequest):
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return "Rejected: " + apiErr.Message
		}
	}

	return fmt.Sprintf("Error adding transaction: %v", err)
}

func (m *DashboardModel) refreshTable() {
	txs := m.ctrl.Snapshot().Transactions

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			string(tx.Category),
			m.opts.Formatter.Float(tx.Amount),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); len(rows) > 0 && c >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Messages

type loadedMsg struct {
	err error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx(m.opts.Timeout)
		defer cancel()

		return loadedMsg{err: m.ctrl.Load(ctx)}
	}
}

type submittedMsg struct {
	err error
}

func (m DashboardModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx(m.opts.Timeout)
		defer cancel()

		return submittedMsg{err: m.ctrl.Submit(ctx)}
	}
}

type deletedMsg struct {
	err error
}

func (m DashboardModel) deleteSelectedCmd() tea.Cmd {
	txs := m.ctrl.Snapshot().Transactions

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(txs) {
		return nil
	}

	id := txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := RequestCtx(m.opts.Timeout)
		defer cancel()

		return deletedMsg{err: m.ctrl.Delete(ctx, id)}
	}
}
