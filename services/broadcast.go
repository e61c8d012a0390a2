// Package services implements the collaborators the console screens depend
// on, on top of the REST client.
package services

import (
	"context"

	"github.com/deemkeen/herald/domain"
)

// BroadcastAPI is the part of client.Client the broadcast screens use.
type BroadcastAPI interface {
	Broadcasts(ctx context.Context) ([]domain.Broadcast, error)
	Broadcast(ctx context.Context, id int64) (domain.Broadcast, error)
	BroadcastCreate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error)
	BroadcastUpdate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error)
	BroadcastDelete(ctx context.Context, id int64) error
}

type BroadcastService struct {
	api BroadcastAPI
}

func NewBroadcastService(api BroadcastAPI) *BroadcastService {
	return &BroadcastService{api: api}
}

func (s *BroadcastService) Broadcasts(ctx context.Context) ([]domain.Broadcast, error) {
	return s.api.Broadcasts(ctx)
}

func (s *BroadcastService) BroadcastByID(ctx context.Context, id int64) (domain.Broadcast, error) {
	return s.api.Broadcast(ctx, id)
}

// CreateBroadcast creates a draft; the level defaults to info.
func (s *BroadcastService) CreateBroadcast(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	if b.Level == "" {
		b.Level = domain.LevelInfo
	}
	if err := b.Validate(); err != nil {
		return domain.Broadcast{}, err
	}
	return s.api.BroadcastCreate(ctx, b)
}

// UpdateBroadcast validates b before sending it and returns the server's
// copy.
func (s *BroadcastService) UpdateBroadcast(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	if err := b.Validate(); err != nil {
		return domain.Broadcast{}, err
	}
	return s.api.BroadcastUpdate(ctx, b)
}

func (s *BroadcastService) DeleteBroadcast(ctx context.Context, b domain.Broadcast) error {
	return s.api.BroadcastDelete(ctx, b.ID)
}
