package api

import (
	"encoding/json"

	"github.com/phrazzld/expense-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"max=100"`
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Msg         string `json:"msg"`
	AccessToken string `json:"access_token"`
}

// ProfileResponse wraps the authenticated user's public profile.
type ProfileResponse struct {
	User *domain.Profile `json:"user"`
}

// FlexibleNumber captures a JSON value that should hold a number. Clients
// may send a JSON number or a numeric string; the raw text is kept so the
// domain layer can validate it.
type FlexibleNumber struct {
	Raw string
	Set bool
}

// UnmarshalJSON records that the field was present and keeps its text.
// JSON strings are unquoted; anything else is kept verbatim.
func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	n.Set = true
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &n.Raw)
	}
	n.Raw = string(data)
	return nil
}

// Ptr returns the raw text, or nil when the field was absent.
func (n FlexibleNumber) Ptr() *string {
	if !n.Set {
		return nil
	}
	raw := n.Raw
	return &raw
}

// ExpenseRequest is the body of the add and update expense endpoints.
// Pointer fields distinguish "absent" from "empty".
type ExpenseRequest struct {
	Title       *string        `json:"title"       validate:"omitempty,max=200"`
	Category    *string        `json:"category"    validate:"omitempty,max=100"`
	Amount      FlexibleNumber `json:"amount"`
	Description *string        `json:"description" validate:"omitempty,max=1000"`
	Date        *string        `json:"date"`
}

// Input converts the request to the input for a new expense.
func (r ExpenseRequest) Input() domain.ExpenseInput {
	return domain.ExpenseInput{
		Title:       deref(r.Title),
		Category:    deref(r.Category),
		Amount:      r.Amount.Ptr(),
		Description: deref(r.Description),
		Date:        r.Date,
	}
}

// Patch converts the request to a partial update.
func (r ExpenseRequest) Patch() domain.ExpensePatch {
	return domain.ExpensePatch{
		Title:       r.Title,
		Category:    r.Category,
		Amount:      r.Amount.Ptr(),
		Description: r.Description,
	}
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ExpenseListResponse is the body of the list endpoint.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ExpenseResultResponse is the body of the add and update endpoints.
type ExpenseResultResponse struct {
	Msg     string          `json:"msg"`
	Expense ExpenseResponse `json:"expense"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID,
		Title:       e.Title,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.FormattedDate(),
	}
}

func toExpenseListResponse(expenses []*domain.Expense) ExpenseListResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return ExpenseListResponse{Expenses: out}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
