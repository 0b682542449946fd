package handlers

import (
	"net/http"

	"github.com/lakshya2505/LogiCore/internal/models"
	"github.com/lakshya2505/LogiCore/internal/store"
)

// ExpenseHandler serves the expense endpoints. Expenses are append-only:
// there is no update route.
type ExpenseHandler struct {
	store *store.Store
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(s *store.Store) *ExpenseHandler {
	return &ExpenseHandler{store: s}
}

// List returns all expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snap.Expenses)
}

// Create records an expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Expense
	if !decodeBody(w, r, &in) {
		return
	}
	expense, err := h.store.AddExpense(r.Context(), in)
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// Delete removes an expense record.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeFleetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
