package models

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format expenses are stored and grouped by.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format. Use YYYY-MM-DD")

type Expense struct {
	Description string  `json:"description" example:"Groceries"`
	Amount      float64 `json:"amount" example:"42.5"`
	Category    string  `json:"category" example:"Food"`
	Date        string  `json:"date" example:"2024-01-31"`
}

// ExpenseRequest is the body of an expense create. Every key must be
// present; an explicit 0 amount is allowed.
type ExpenseRequest struct {
	Description *string  `json:"description" binding:"required" example:"Groceries"`
	Amount      *float64 `json:"amount" binding:"required" example:"42.5"`
	Category    *string  `json:"category" binding:"required" example:"Food"`
	Date        *string  `json:"date" binding:"required" example:"2024-01-31"`
}

func (r ExpenseRequest) Expense() Expense {
	return Expense{
		Description: *r.Description,
		Amount:      *r.Amount,
		Category:    *r.Category,
		Date:        *r.Date,
	}
}

type ExpenseInDB struct {
	ID int64 `json:"id" example:"1"`
	Expense
}

// NormalizeDate parses s as a calendar date and returns it in DateLayout.
// Single-digit month and day ("2024-1-5") are accepted; out of range
// values such as month 13 or February 30 are rejected.
func NormalizeDate(s string) (string, error) {
	for _, layout := range []string{DateLayout, "2006-1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", ErrInvalidDate
}
