package client

import (
	"context"
	"fmt"

	"github.com/deemkeen/herald/domain"
)

// UserMe returns the profile the API token belongs to.
func (c *Client) UserMe(ctx context.Context) (domain.User, error) {
	var u domain.User
	if _, err := c.GetJSON(ctx, "/user/me", &u); err != nil {
		return domain.User{}, fmt.Errorf("UserMe> %w", err)
	}
	return u, nil
}

// Navbar returns the navigation entries of the current user.
func (c *Client) Navbar(ctx context.Context) ([]domain.NavbarProjectData, error) {
	var data []domain.NavbarProjectData
	if _, err := c.GetJSON(ctx, "/navbar", &data); err != nil {
		return nil, fmt.Errorf("Navbar> %w", err)
	}
	return data, nil
}

// Status pings the API.
func (c *Client) Status(ctx context.Context) error {
	if _, err := c.GetJSON(ctx, "/mon/status", nil); err != nil {
		return fmt.Errorf("Status> %w", err)
	}
	return nil
}
