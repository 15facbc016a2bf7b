package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"budgetctl/pkg/models"
)

// ImportTemplates lists the saved column-mapping templates owned by the
// acting user.
func (c *Client) ImportTemplates(ctx context.Context) ([]models.ImportTemplate, error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(c.userID))
	var out []models.ImportTemplate
	if err := c.get(ctx, "/import-templates", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveImportTemplate persists the current mapping under a user-chosen name.
func (c *Client) SaveImportTemplate(ctx context.Context, tpl models.ImportTemplate) (models.ImportTemplate, error) {
	if err := tpl.Validate(); err != nil {
		return models.ImportTemplate{}, err
	}
	tpl.UserID = c.userID
	var out models.ImportTemplate
	if err := c.post(ctx, "/import-templates", tpl, &out); err != nil {
		return models.ImportTemplate{}, err
	}
	return out, nil
}

// DeleteImportTemplate removes a saved template by identifier.
func (c *Client) DeleteImportTemplate(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/import-templates/%d", id))
}
