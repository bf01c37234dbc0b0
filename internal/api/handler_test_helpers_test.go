package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/expense-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

const testUserID = "7b9e6a52-3f0e-4b1c-9a9d-2f4b8f1c0e11"

// withUser stands in for the authentication middleware.
func withUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(shared.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newExpenseRouter(h *ExpenseHandler, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(withUser(userID))
	r.Get("/api/expenses", h.ListExpenses)
	r.Post("/api/expenses", h.AddExpense)
	r.Put("/api/expenses/{id}", h.UpdateExpense)
	r.Delete("/api/expenses/{id}", h.DeleteExpense)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}
