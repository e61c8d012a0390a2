package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/util"
)

func toItem(b domain.Broadcast, withContent bool) BroadcastItem {
	item := BroadcastItem{
		ID:       b.ID,
		Title:    b.Title,
		Level:    b.Level,
		Scope:    b.Scope(),
		Archived: b.Archived,
		Read:     b.Read,
		Created:  b.Created,
		Updated:  b.Updated,
	}
	if withContent {
		item.Content = b.Content
	}
	return item
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("broadcast id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid broadcast id: %s", args[0])
	}
	return id, nil
}

// handleBroadcasts lists broadcasts, newest first. Archived ones are hidden
// unless -a is given.
func (h *Handler) handleBroadcasts(ctx context.Context, args []string) error {
	all := false
	limit := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-a", "--all":
			all = true
		case "-n":
			if i+1 >= len(args) {
				err := fmt.Errorf("-n needs a value")
				h.output.Error(err)
				return err
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				err = fmt.Errorf("invalid value for -n: %s", args[i+1])
				h.output.Error(err)
				return err
			}
			limit = n
			i++
		}
	}

	broadcasts, err := h.api.Broadcasts(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}

	items := make([]BroadcastItem, 0, len(broadcasts))
	for _, b := range broadcasts {
		if b.Archived && !all {
			continue
		}
		items = append(items, toItem(b, false))
		if limit > 0 && len(items) == limit {
			break
		}
	}

	if h.output.IsJSON() {
		h.output.JSON(BroadcastsResponse{Broadcasts: items, Count: len(items)})
		return nil
	}

	if len(items) == 0 {
		h.output.Println("No broadcasts.")
		return nil
	}
	for _, it := range items {
		flags := ""
		if it.Level == domain.LevelWarning {
			flags += " !"
		}
		if it.Archived {
			flags += " (archived)"
		}
		h.output.Print("#%-4d %-40s [%s]%s  %s\n",
			it.ID, util.TruncateWidth(it.Title, 40), it.Scope, flags, util.FormatTimeAgo(it.Created))
	}
	return nil
}

func (h *Handler) handleBroadcast(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		h.output.Error(err)
		return err
	}

	b, err := h.api.Broadcast(ctx, id)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(toItem(b, true))
		return nil
	}

	h.output.Print("#%d %s\n", b.ID, b.Title)
	h.output.Print("level: %s  scope: %s  created: %s\n", b.Level, b.Scope(), b.Created.Format(util.DateTimeFormat()))
	if b.Archived {
		h.output.Println("archived")
	}
	h.output.Println(strings.Repeat("-", 40))
	h.output.Println(b.Content)
	return nil
}

func (h *Handler) handleMark(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		h.output.Error(err)
		return err
	}
	if err := h.api.BroadcastMarkAsRead(ctx, id); err != nil {
		h.output.Error(err)
		return err
	}
	if h.output.IsJSON() {
		h.output.JSON(MarkResponse{ID: id, Status: "read"})
		return nil
	}
	h.output.Print("Broadcast #%d marked as read\n", id)
	return nil
}
