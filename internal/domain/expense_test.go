package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewExpense(t *testing.T) {
	now := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)

	expense, err := NewExpense("user-1", ExpenseInput{
		Title:    " Coffee ",
		Category: "Food",
		Amount:   strPtr("3.50"),
	}, now)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, expense.ID)
	assert.Equal(t, "user-1", expense.UserID)
	assert.Equal(t, "Coffee", expense.Title)
	assert.Equal(t, "Food", expense.Category)
	assert.Equal(t, 3.5, expense.Amount)
	assert.Equal(t, "", expense.Description, "description defaults to empty")
	assert.Equal(t, now, expense.Date, "date defaults to now")
	assert.Equal(t, "Mar 07, 2025", expense.FormattedDate())
}

func TestNewExpenseExplicitDate(t *testing.T) {
	expense, err := NewExpense("user-1", ExpenseInput{
		Title:    "Rent",
		Category: "Housing",
		Amount:   strPtr("1200"),
		Date:     strPtr("2024-12-01"),
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Dec 01, 2024", expense.FormattedDate())
}

func TestNewExpenseValidation(t *testing.T) {
	tests := []struct {
		name  string
		input ExpenseInput
	}{
		{"blank title", ExpenseInput{Title: "  ", Category: "Food", Amount: strPtr("1")}},
		{"blank category", ExpenseInput{Title: "Coffee", Category: "", Amount: strPtr("1")}},
		{"missing amount", ExpenseInput{Title: "Coffee", Category: "Food"}},
		{"non-numeric amount", ExpenseInput{Title: "Coffee", Category: "Food", Amount: strPtr("abc")}},
		{"nan amount", ExpenseInput{Title: "Coffee", Category: "Food", Amount: strPtr("NaN")}},
		{"bad date", ExpenseInput{Title: "Coffee", Category: "Food", Amount: strPtr("1"), Date: strPtr("07/03/2025")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := NewExpense("user-1", tt.input, time.Now())

			assert.Nil(t, expense)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"3.50", 3.5, false},
		{" 42 ", 42, false},
		{"-1.25", -1.25, false},
		{"1e3", 1000, false},
		{"abc", 0, true},
		{"", 0, true},
		{"null", 0, true},
		{"true", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpensePatchChanges(t *testing.T) {
	t.Run("only present fields are eligible", func(t *testing.T) {
		changes, err := ExpensePatch{Title: strPtr(" Lunch "), Amount: strPtr("12")}.Changes()

		require.NoError(t, err)
		require.NotNil(t, changes.Title)
		assert.Equal(t, "Lunch", *changes.Title)
		require.NotNil(t, changes.Amount)
		assert.Equal(t, 12.0, *changes.Amount)
		assert.Nil(t, changes.Category)
		assert.Nil(t, changes.Description)
	})

	t.Run("blank strings are skipped", func(t *testing.T) {
		changes, err := ExpensePatch{Title: strPtr("  "), Category: strPtr("Travel")}.Changes()

		require.NoError(t, err)
		assert.Nil(t, changes.Title)
		require.NotNil(t, changes.Category)
		assert.Equal(t, "Travel", *changes.Category)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := ExpensePatch{}.Changes()
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("only blank strings is rejected", func(t *testing.T) {
		_, err := ExpensePatch{Title: strPtr(""), Description: strPtr(" ")}.Changes()
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("non-numeric amount is rejected", func(t *testing.T) {
		_, err := ExpensePatch{Title: strPtr("ok"), Amount: strPtr("abc")}.Changes()
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestParseExpenseID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseExpenseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, raw := range []string{"", "not-a-uuid", "507f1f77bcf86cd799439011", uuid.Nil.String()} {
		_, err := ParseExpenseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}
