package api

import (
	"context"
	"net/url"
	"strconv"

	"budgetctl/pkg/models"
)

// Accounts fetches the account reference list. The import flow treats the
// result as a read-only snapshot.
func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := c.get(ctx, "/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories fetches the category tree as a flat list.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users fetches the known users.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OperationFilter narrows an operation listing.
type OperationFilter struct {
	Year    int
	Month   int
	AssetID int
}

func (f OperationFilter) query() url.Values {
	q := url.Values{}
	if f.Year > 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Month > 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	if f.AssetID > 0 {
		q.Set("asset_id", strconv.Itoa(f.AssetID))
	}
	return q
}

// Operations lists operations, optionally filtered by month or asset.
func (c *Client) Operations(ctx context.Context, filter OperationFilter) ([]models.Operation, error) {
	var out []models.Operation
	if err := c.get(ctx, "/operations", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
