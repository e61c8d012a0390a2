package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/deemkeen/herald/util"
	"github.com/gorilla/feeds"
)

// handleFeed writes the active broadcasts as RSS, Atom with --atom, or
// JSON Feed in JSON mode.
func (h *Handler) handleFeed(ctx context.Context, args []string) error {
	atom := false
	for _, a := range args {
		if a == "--atom" {
			atom = true
		}
	}

	broadcasts, err := h.api.Broadcasts(ctx)
	if err != nil {
		h.output.Error(err)
		return err
	}

	base := ""
	if h.conf != nil {
		base = h.conf.Conf.ApiURL
	}

	feed := &feeds.Feed{
		Title:       util.Name + " broadcasts",
		Link:        &feeds.Link{Href: base + "/broadcast"},
		Description: "Announcements from the administrators",
		Author:      &feeds.Author{Name: h.user.Fullname, Email: h.user.Email},
		Created:     time.Now(),
	}
	for _, b := range broadcasts {
		if b.Archived {
			continue
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/broadcast/%d", base, b.ID),
			Title:       fmt.Sprintf("[%s] %s", b.Level, b.Title),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/broadcast/%d", base, b.ID)},
			Description: b.Content,
			Created:     b.Created,
			Updated:     b.Updated,
		})
	}

	var doc string
	switch {
	case h.output.IsJSON():
		doc, err = feed.ToJSON()
	case atom:
		doc, err = feed.ToAtom()
	default:
		doc, err = feed.ToRss()
	}
	if err != nil {
		err = fmt.Errorf("rendering feed: %w", err)
		h.output.Error(err)
		return err
	}
	h.output.Raw(doc)
	return nil
}
