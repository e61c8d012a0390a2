package client

import (
	"context"
	"fmt"

	"github.com/deemkeen/herald/domain"
)

// Broadcasts lists broadcasts visible to the current user, archived ones
// included.
func (c *Client) Broadcasts(ctx context.Context) ([]domain.Broadcast, error) {
	var bs []domain.Broadcast
	if _, err := c.GetJSON(ctx, "/broadcast", &bs); err != nil {
		return nil, fmt.Errorf("Broadcasts> %w", err)
	}
	return bs, nil
}

func (c *Client) Broadcast(ctx context.Context, id int64) (domain.Broadcast, error) {
	var b domain.Broadcast
	if _, err := c.GetJSON(ctx, fmt.Sprintf("/broadcast/%d", id), &b); err != nil {
		return domain.Broadcast{}, fmt.Errorf("Broadcast> %w", err)
	}
	return b, nil
}

func (c *Client) BroadcastCreate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	var created domain.Broadcast
	if _, err := c.PostJSON(ctx, "/broadcast", &b, &created); err != nil {
		return domain.Broadcast{}, fmt.Errorf("BroadcastCreate> %w", err)
	}
	return created, nil
}

// BroadcastUpdate sends b and returns the server's copy.
func (c *Client) BroadcastUpdate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	var updated domain.Broadcast
	if _, err := c.PutJSON(ctx, fmt.Sprintf("/broadcast/%d", b.ID), &b, &updated); err != nil {
		return domain.Broadcast{}, fmt.Errorf("BroadcastUpdate> %w", err)
	}
	return updated, nil
}

func (c *Client) BroadcastDelete(ctx context.Context, id int64) error {
	if _, err := c.DeleteJSON(ctx, fmt.Sprintf("/broadcast/%d", id), nil); err != nil {
		return fmt.Errorf("BroadcastDelete> %w", err)
	}
	return nil
}

func (c *Client) BroadcastMarkAsRead(ctx context.Context, id int64) error {
	if _, err := c.PostJSON(ctx, fmt.Sprintf("/broadcast/%d/mark", id), nil, nil); err != nil {
		return fmt.Errorf("BroadcastMarkAsRead> %w", err)
	}
	return nil
}
