package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"budgetctl/pkg/models"
)

// The asset, goal, recurring-operation, hashtag and budget endpoints all
// follow the same create/list/update/delete REST shape.

func (c *Client) Assets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	if err := c.get(ctx, "/assets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	var out models.Asset
	if err := c.post(ctx, "/assets", a, &out); err != nil {
		return models.Asset{}, err
	}
	return out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, a models.Asset) error {
	return c.put(ctx, fmt.Sprintf("/assets/%d", a.ID), a, nil)
}

func (c *Client) DeleteAsset(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/assets/%d", id))
}

func (c *Client) Goals(ctx context.Context) ([]models.Goal, error) {
	var out []models.Goal
	if err := c.get(ctx, "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	var out models.Goal
	if err := c.post(ctx, "/goals", g, &out); err != nil {
		return models.Goal{}, err
	}
	return out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/goals/%d", id))
}

func (c *Client) RecurringOperations(ctx context.Context) ([]models.RecurringOperation, error) {
	var out []models.RecurringOperation
	if err := c.get(ctx, "/recurring-operations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRecurringOperation(ctx context.Context, r models.RecurringOperation) (models.RecurringOperation, error) {
	var out models.RecurringOperation
	if err := c.post(ctx, "/recurring-operations", r, &out); err != nil {
		return models.RecurringOperation{}, err
	}
	return out, nil
}

func (c *Client) DeleteRecurringOperation(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/recurring-operations/%d", id))
}

func (c *Client) Hashtags(ctx context.Context) ([]models.Hashtag, error) {
	var out []models.Hashtag
	if err := c.get(ctx, "/hashtags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHashtag(ctx context.Context, name string) (models.Hashtag, error) {
	var out models.Hashtag
	if err := c.post(ctx, "/hashtags", models.Hashtag{Name: name}, &out); err != nil {
		return models.Hashtag{}, err
	}
	return out, nil
}

func (c *Client) DeleteHashtag(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/hashtags/%d", id))
}

// BudgetPlan fetches the plan for one month.
func (c *Client) BudgetPlan(ctx context.Context, year, month int) (models.BudgetPlan, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	var out models.BudgetPlan
	if err := c.get(ctx, "/budgets", q, &out); err != nil {
		return models.BudgetPlan{}, err
	}
	return out, nil
}

func (c *Client) SaveBudgetPlan(ctx context.Context, p models.BudgetPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/budgets", p, nil)
}
