package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout renders expense dates as "Mon DD, YYYY".
const DateLayout = "Jan 02, 2006"

// inputDateLayouts are accepted for an explicit expense date.
var inputDateLayouts = []string{time.RFC3339, "2006-01-02"}

// Expense is a single spending record owned by one user.
type Expense struct {
	ID uuid.UUID `json:"id"`
	// UserID is the owner's identity as carried by the access token. It is
	// stored as an opaque scalar, not a reference to the users table.
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ExpenseInput carries the client-supplied fields for a new expense.
// Amount and Date hold the raw text sent by the client; nil means absent.
type ExpenseInput struct {
	Title       string
	Category    string
	Amount      *string
	Description string
	Date        *string
}

// ExpensePatch carries a partial update. A nil field was not sent.
type ExpensePatch struct {
	Title       *string
	Category    *string
	Amount      *string
	Description *string
}

// ExpenseChanges is an ExpensePatch after validation: only fields that will
// actually be written are non-nil.
type ExpenseChanges struct {
	Title       *string
	Category    *string
	Amount      *float64
	Description *string
}

// IsEmpty reports whether no field is eligible for update.
func (c ExpenseChanges) IsEmpty() bool {
	return c.Title == nil && c.Category == nil && c.Amount == nil && c.Description == nil
}

// NewExpense builds a validated Expense for userID from client input.
// The date defaults to now (UTC) when the input carries none.
func NewExpense(userID string, in ExpenseInput, now time.Time) (*Expense, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" || category == "" {
		return nil, NewValidationError("", "title, category and amount are required", nil)
	}
	if in.Amount == nil {
		return nil, NewValidationError("", "title, category and amount are required", ErrInvalidAmount)
	}

	amount, err := ParseAmount(*in.Amount)
	if err != nil {
		return nil, err
	}

	date := now.UTC()
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		date, err = ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
	}

	expense := &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}
	return expense, nil
}

// Validate checks the invariants every stored expense must satisfy.
func (e *Expense) Validate() error {
	if e.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if e.UserID == "" {
		return NewValidationError("user_id", "cannot be empty", nil)
	}
	if strings.TrimSpace(e.Title) == "" {
		return NewValidationError("title", "is required", nil)
	}
	if strings.TrimSpace(e.Category) == "" {
		return NewValidationError("category", "is required", nil)
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return NewValidationError("amount", "must be a number", ErrInvalidAmount)
	}
	if e.Date.IsZero() {
		return NewValidationError("date", "cannot be empty", nil)
	}
	return nil
}

// FormattedDate renders the expense date in DateLayout.
func (e *Expense) FormattedDate() string {
	return e.Date.UTC().Format(DateLayout)
}

// Changes validates p and drops string fields that are blank after trimming;
// those keep their stored value. It fails when the amount is not numeric or
// when nothing is left to update.
func (p ExpensePatch) Changes() (ExpenseChanges, error) {
	var c ExpenseChanges

	c.Title = trimmedOrNil(p.Title)
	c.Category = trimmedOrNil(p.Category)
	c.Description = trimmedOrNil(p.Description)

	if p.Amount != nil {
		amount, err := ParseAmount(*p.Amount)
		if err != nil {
			return ExpenseChanges{}, err
		}
		c.Amount = &amount
	}

	if c.IsEmpty() {
		return ExpenseChanges{}, NewValidationError("", "no valid fields to update", nil)
	}
	return c, nil
}

// ParseAmount converts the client's textual amount to a float64.
// Numeric strings such as "3.50" are accepted; NaN and infinities are not.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, NewValidationError("amount", "must be a number", ErrInvalidAmount)
	}
	return amount, nil
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, NewValidationError("date", "must be YYYY-MM-DD or RFC 3339", nil)
}

// ParseExpenseID parses a client-supplied expense ID.
func ParseExpenseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, NewValidationError("expense id", "has invalid format", ErrInvalidID)
	}
	return id, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
