// Package client talks to the transactions API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

// APIError is an error reported by the server in its {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL. A nil httpClient
// falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type CreateRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

type transactionDTO struct {
	ID          uuid.UUID            `json:"id"`
	Date        transaction.Date     `json:"date"`
	Description string               `json:"description"`
	Category    transaction.Category `json:"category"`
	Amount      float64              `json:"amount"`
}

func (d transactionDTO) toTransaction() transaction.Transaction {
	return transaction.Transaction{
		ID:          d.ID,
		Date:        d.Date,
		Description: d.Description,
		Category:    d.Category,
		Amount:      d.Amount,
	}
}

func (c *Client) List(ctx context.Context) ([]transaction.Transaction, error) {
	var dtos []transactionDTO
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	txs := make([]transaction.Transaction, len(dtos))
	for i, d := range dtos {
		txs[i] = d.toTransaction()
	}

	return txs, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*transaction.Transaction, error) {
	var dto transactionDTO
	if err := c.do(ctx, http.MethodPost, "/transactions", req, &dto); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	tx := dto.toTransaction()

	return &tx, nil
}

// Delete returns the removed transaction, or nil when the server had none.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var dto *transactionDTO
	if err := c.do(ctx, http.MethodDelete, "/transactions/"+id.String(), nil, &dto); err != nil {
		return nil, fmt.Errorf("deleting transaction: %w", err)
	}

	if dto == nil {
		return nil, nil
	}

	tx := dto.toTransaction()

	return &tx, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}

	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// IsAPIError reports whether err carries a server-reported error with the given status.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
