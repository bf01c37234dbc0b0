package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/expense-api/internal/api/shared"
	"github.com/phrazzld/expense-api/internal/platform/logger"
	"github.com/phrazzld/expense-api/internal/service"
)

// ExpenseHandler handles the expense endpoints. Every handler runs behind
// the authentication middleware and acts only on the caller's expenses.
type ExpenseHandler struct {
	expenseService service.ExpenseService
	logger         *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler with the given dependencies.
func NewExpenseHandler(expenseService service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger.With(slog.String("component", "expense_handler")),
	}
}

// ListExpenses handles GET /api/expenses.
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenseService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toExpenseListResponse(expenses))
}

// AddExpense handles POST /api/expenses.
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ExpenseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Add(r.Context(), userID, req.Input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ExpenseResultResponse{
		Msg:     "Expense added",
		Expense: toExpenseResponse(expense),
	})
}

// UpdateExpense handles PUT /api/expenses/{id}.
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ExpenseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	expense, err := h.expenseService.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExpenseResultResponse{
		Msg:     "Expense updated",
		Expense: toExpenseResponse(expense),
	})
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.expenseService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("expense deleted",
		slog.String("user_id", userID))

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Msg: "Expense deleted"})
}
