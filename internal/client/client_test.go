package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendly/internal/client"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

func TestClient_List(t *testing.T) {
	id := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"`+id.String()+`","date":"2024-05-01","description":"Groceries","category":"Food","amount":20}]`)
	}))
	defer ts.Close()

	txs, err := client.New(ts.URL+"/", nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, transaction.Transaction{
		ID:          id,
		Date:        transaction.NewDate(2024, time.May, 1),
		Description: "Groceries",
		Category:    transaction.CategoryFood,
		Amount:      20,
	}, txs[0])
}

func TestClient_Create(t *testing.T) {
	id := uuid.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 12.5, body["amount"])
		assert.Equal(t, "Transport", body["category"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"`+id.String()+`","date":"2024-05-02","description":"Bus","category":"Transport","amount":12.5}`)
	}))
	defer ts.Close()

	tx, err := client.New(ts.URL, nil).Create(context.Background(), client.CreateRequest{
		Date:        "2024-05-02",
		Description: "Bus",
		Category:    "Transport",
		Amount:      12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID)
	assert.Equal(t, 12.5, tx.Amount)
}

func TestClient_Create_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid input: date is required"}`)
	}))
	defer ts.Close()

	_, err := client.New(ts.URL, nil).Create(context.Background(), client.CreateRequest{Amount: 1})
	require.Error(t, err)

	assert.True(t, client.IsAPIError(err, http.StatusBadRequest))
	assert.ErrorContains(t, err, "date is required")
}

func TestClient_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/transactions/"+id.String(), r.URL.Path)
			_, _ = io.WriteString(w, `{"id":"`+id.String()+`","date":"2024-05-02","description":"Bus","category":"Transport","amount":5}`)
		}))
		defer ts.Close()

		tx, err := client.New(ts.URL, nil).Delete(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, id, tx.ID)
	})

	t.Run("Null", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "null\n")
		}))
		defer ts.Close()

		tx, err := client.New(ts.URL, nil).Delete(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("PlainTextError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway down", http.StatusBadGateway)
		}))
		defer ts.Close()

		_, err := client.New(ts.URL, nil).Delete(context.Background(), id)
		assert.True(t, client.IsAPIError(err, http.StatusBadGateway))
		assert.ErrorContains(t, err, "gateway down")
	})
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	_, err := client.New(ts.URL, nil).List(context.Background())
	require.Error(t, err)
	assert.False(t, client.IsAPIError(err, 0))
}
