package services

import (
	"context"
	"time"

	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/stream"
	"github.com/rs/zerolog/log"
)

type NavbarAPI interface {
	Navbar(ctx context.Context) ([]domain.NavbarProjectData, error)
}

// NavbarService shares the navigation data of the current user between
// screens. Subscribers get the last fetched value right away.
type NavbarService struct {
	ctx  context.Context
	api  NavbarAPI
	feed *stream.Feed[[]domain.NavbarProjectData]
}

// NewNavbarService returns a service whose fetches run on ctx.
func NewNavbarService(ctx context.Context, api NavbarAPI) *NavbarService {
	return &NavbarService{
		ctx:  ctx,
		api:  api,
		feed: stream.NewFeed[[]domain.NavbarProjectData](),
	}
}

// Data subscribes to navigation data; with refresh a fetch is started in
// the background.
func (s *NavbarService) Data(refresh bool) *stream.Subscription[[]domain.NavbarProjectData] {
	sub := s.feed.Subscribe(1)
	if refresh {
		go func() {
			if err := s.Refresh(s.ctx); err != nil {
				log.Warn().Err(err).Msg("navbar refresh failed")
			}
		}()
	}
	return sub
}

func (s *NavbarService) Refresh(ctx context.Context) error {
	data, err := s.api.Navbar(ctx)
	if err != nil {
		return err
	}
	s.feed.Publish(data)
	return nil
}

// Run refreshes every interval until ctx is done, then closes the feed.
func (s *NavbarService) Run(ctx context.Context, interval time.Duration) {
	defer s.feed.Close()
	if interval <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("periodic navbar refresh failed")
			}
		}
	}
}
