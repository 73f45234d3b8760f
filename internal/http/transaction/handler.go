package transaction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      *amount `json:"amount"`
}

// amount accepts a JSON number or a string holding one.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("amount %q is not a number", s)
		}

		*a = amount(f)

		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*a = amount(f)

	return nil
}

func (a *amount) float() *float64 {
	if a == nil {
		return nil
	}

	return new(float64(*a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

// create reports every failure, store errors included, as a client error.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Date:        req.Date,
		Description: req.Description,
		Category:    transaction.Category(req.Category),
		Amount:      req.Amount.float(),
	})
	if err != nil {
		slog.WarnContext(r.Context(), "create transaction rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

// delete answers 200 with null when nothing matched the id.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if tx == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}
