package api

import (
	"context"
	"fmt"

	"budgetctl/pkg/models"
)

// CreateOperation submits one operation to the backend and returns the
// stored record.
func (c *Client) CreateOperation(ctx context.Context, op models.Operation) (models.Operation, error) {
	var out models.Operation
	if err := c.post(ctx, "/operations", op, &out); err != nil {
		return models.Operation{}, err
	}
	return out, nil
}

// UpdateOperation replaces an existing operation.
func (c *Client) UpdateOperation(ctx context.Context, op models.Operation) error {
	return c.put(ctx, fmt.Sprintf("/operations/%d", op.ID), op, nil)
}

// DeleteOperation removes an operation by id.
func (c *Client) DeleteOperation(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/operations/%d", id))
}

// ClassifyUncategorized triggers the backend pass that marks ambiguous
// postings as transfers. Returns how many rows were reclassified.
func (c *Client) ClassifyUncategorized(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.post(ctx, "/operations/classify-uncategorized", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// CreateTransfer books a transfer between two assets.
func (c *Client) CreateTransfer(ctx context.Context, t models.Transfer) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/transfers", t, nil)
}
