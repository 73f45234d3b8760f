package view

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/spendly/internal/client"
	"github.com/MrJamesThe3rd/spendly/internal/dashboard"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

func newTestModel(t *testing.T) (DashboardModel, *dashboard.Controller, *dashboard.MockClient) {
	t.Helper()

	api := dashboard.NewMockClient(gomock.NewController(t))
	now := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	ctrl := dashboard.New(api, slog.New(slog.NewTextHandler(io.Discard, nil)),
		dashboard.WithClock(func() time.Time { return now }))

	m := NewDashboardModel(ctrl, Options{
		Title:     "Spendly",
		Formatter: NewFormatter("₹", language.English),
		Timeout:   time.Second,
	})

	return m, ctrl, api
}

func sampleTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: uuid.New(), Date: transaction.NewDate(2024, time.May, 1), Description: "Groceries", Category: "Food", Amount: 20},
		{ID: uuid.New(), Date: transaction.NewDate(2024, time.May, 2), Description: "Lunch", Category: "Food", Amount: 10},
		{ID: uuid.New(), Date: transaction.NewDate(2024, time.June, 1), Description: "Bus", Category: "Transport", Amount: 5},
	}
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	dm, ok := next.(DashboardModel)
	require.True(t, ok)

	return dm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, m DashboardModel) DashboardModel {
	t.Helper()

	m, _ = update(t, m, m.Init()())

	return m
}

func TestDashboard_Empty(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return([]transaction.Transaction{}, nil)

	assert.Contains(t, m.View(), "Loading transactions")

	m = loaded(t, m)

	out := m.View()
	assert.Contains(t, out, "No transactions added yet.")
	assert.Contains(t, out, "₹0.00")
}

func TestDashboard_RendersSummary(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(sampleTransactions(), nil)

	m = loaded(t, m)

	out := m.View()
	assert.Contains(t, out, "₹35.00")
	assert.Contains(t, out, "₹10.00")
	assert.Contains(t, out, "₹30.00")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Transport")
	assert.NotContains(t, out, "No transactions added yet.")
}

func TestDashboard_LoadFailure(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	m = loaded(t, m)

	out := m.View()
	assert.Contains(t, out, "Error fetching transactions")
	assert.Contains(t, out, "No transactions added yet.")
}

func TestDashboard_DeleteSelected(t *testing.T) {
	m, ctrl, api := newTestModel(t)

	txs := sampleTransactions()
	api.EXPECT().List(gomock.Any()).Return(txs, nil)
	api.EXPECT().Delete(gomock.Any(), txs[0].ID).Return(&txs[0], nil)

	m = loaded(t, m)

	m, cmd := update(t, m, key("d"))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())

	assert.Len(t, ctrl.Snapshot().Transactions, 2)
	assert.Contains(t, m.View(), "Transaction deleted.")
	assert.NotContains(t, m.View(), "Groceries")
}

func TestDashboard_DeleteOnEmptyListIsNoop(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(nil, nil)

	m = loaded(t, m)

	_, cmd := update(t, m, key("d"))
	assert.Nil(t, cmd)
}

func TestDashboard_AddFormCancelKeepsForm(t *testing.T) {
	m, ctrl, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(nil, nil)

	m = loaded(t, m)

	m, _ = update(t, m, key("a"))
	assert.Equal(t, dashStateAdding, m.state)
	assert.Contains(t, m.ShortHelp(), "Esc: cancel")

	m.fields.Amount = "12"

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, dashStateBrowse, m.state)
	assert.Equal(t, "12", ctrl.Form().Amount)
	assert.Equal(t, transaction.CategoryFood, ctrl.Form().Category)
}

func TestDashboard_SubmitResultStatus(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(nil, nil)

	m = loaded(t, m)

	m, _ = update(t, m, submittedMsg{err: dashboard.ErrIncompleteForm})
	assert.Contains(t, m.View(), "Amount and date are required.")

	m, _ = update(t, m, submittedMsg{})
	assert.Contains(t, m.View(), "Expense added.")
}

func TestSubmitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ServerValidationMessage",
			err: fmt.Errorf("creating transaction: %w", &client.APIError{
				StatusCode: http.StatusBadRequest,
				Message:    "invalid input: date is required",
			}),
			want: "Rejected: invalid input: date is required",
		},
		{
			name: "ServerFailure",
			err:  &client.APIError{StatusCode: http.StatusBadGateway, Message: "bad gateway"},
			want: "Error adding transaction: api error (502): bad gateway",
		},
		{
			name: "InvalidAmount",
			err:  dashboard.ErrInvalidAmount,
			want: "Amount must be a number.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, submitStatus(tt.err))
		})
	}
}

func TestDashboard_SizesFromWindow(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, defaultChartWidth, m.chartWidth())
	assert.Equal(t, minTableHeight, m.tableHeight())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 40})
	assert.Equal(t, 50, m.chartWidth())
	assert.Equal(t, 20, m.tableHeight())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 10})
	assert.Equal(t, maxChartWidth, m.chartWidth())
	assert.Equal(t, minTableHeight, m.tableHeight())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, minChartWidth, m.chartWidth())
}

func TestDashboard_Quit(t *testing.T) {
	m, _, api := newTestModel(t)
	api.EXPECT().List(gomock.Any()).Return(nil, nil)

	m = loaded(t, m)

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
