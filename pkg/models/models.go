package models

import "errors"

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyDate       = errors.New("empty date")
	ErrMissingAccount  = errors.New("missing account")
	ErrInvalidType     = errors.New("invalid operation type")
	ErrSplitMismatch   = errors.New("split items do not sum to operation amount")
	ErrSameAsset       = errors.New("transfer source and destination are the same asset")
	ErrInvalidInterval = errors.New("invalid repetition interval")
)

// User identifies the owner of templates and budget data on the backend.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Account is a read-only reference record fetched at import time. The
// import flow only matches against Name and never mutates the list.
type Account struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Category is a node of the expense/income taxonomy. ParentID of zero
// marks a root category.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parent_id"`
	Type     string `json:"type"` // income | expense
}

// Hashtag is a free-form tag attachable to operations.
type Hashtag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BudgetEntry is one planned amount inside a monthly budget plan.
type BudgetEntry struct {
	CategoryID int     `json:"category_id"`
	Planned    float64 `json:"planned_amount"`
}

// BudgetPlan is the month-level plan the backend stores per user.
type BudgetPlan struct {
	ID      int           `json:"id"`
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Entries []BudgetEntry `json:"entries"`
}

func (b BudgetPlan) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return errors.New("invalid month")
	}
	for _, e := range b.Entries {
		if e.Planned < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}

// Goal is a savings goal tracked against a target amount.
type Goal struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Target   float64 `json:"target_amount"`
	Current  float64 `json:"current_amount"`
	Deadline string  `json:"deadline,omitempty"` // YYYY-MM-DD, optional
}

func (g Goal) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}
	if g.Target <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Progress returns completion in [0,1], capped at 1.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Current / g.Target
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
