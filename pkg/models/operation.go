package models

import (
	"math"
	"strings"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// Split items may drift from the parent amount by at most this much
	// before validation rejects the operation.
	SplitTolerance = 0.01
)

// SplitItem is one category-tagged sub-amount of a split operation.
type SplitItem struct {
	CategoryID  int     `json:"category_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// Operation is a single income/expense posting against an asset, matching
// the backend's POST /operations payload.
type Operation struct {
	ID            int         `json:"id,omitempty"`
	AssetID       int         `json:"asset_id"`
	Amount        float64     `json:"amount"`
	Description   string      `json:"description"`
	CategoryID    int         `json:"category_id,omitempty"`
	OperationType string      `json:"operation_type"`
	OperationDate string      `json:"operation_date"` // YYYY-MM-DD
	SplitItems    []SplitItem `json:"split_items,omitempty"`
	Hashtags      []string    `json:"hashtags,omitempty"`
}

func (o Operation) Validate() error {
	if o.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(o.OperationDate) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", o.OperationDate); err != nil {
		return ErrEmptyDate
	}
	if o.AssetID <= 0 {
		return ErrMissingAccount
	}
	if o.OperationType != TypeIncome && o.OperationType != TypeExpense {
		return ErrInvalidType
	}
	if len(o.SplitItems) > 0 {
		var sum float64
		for _, s := range o.SplitItems {
			if s.Amount <= 0 {
				return ErrInvalidAmount
			}
			sum += s.Amount
		}
		if math.Abs(sum-o.Amount) > SplitTolerance {
			return ErrSplitMismatch
		}
	}
	return nil
}

// RecurringOperation is a template operation the backend materializes on a
// schedule.
type RecurringOperation struct {
	ID       int       `json:"id,omitempty"`
	Template Operation `json:"template"`
	Interval string    `json:"interval"` // daily | weekly | monthly | yearly
	NextDate string    `json:"next_date"`
}

func (r RecurringOperation) Validate() error {
	switch r.Interval {
	case "daily", "weekly", "monthly", "yearly":
	default:
		return ErrInvalidInterval
	}
	return r.Template.Validate()
}
