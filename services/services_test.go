package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/deemkeen/herald/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu       sync.Mutex
	updated  []domain.Broadcast
	created  []domain.Broadcast
	deleted  []int64
	navbar   []domain.NavbarProjectData
	navErr   error
	navCalls int
	user     domain.User
	userErr  error
}

func (f *fakeAPI) Broadcasts(ctx context.Context) ([]domain.Broadcast, error) {
	return []domain.Broadcast{{ID: 1}}, nil
}

func (f *fakeAPI) Broadcast(ctx context.Context, id int64) (domain.Broadcast, error) {
	return domain.Broadcast{ID: id, Title: "t", Level: domain.LevelInfo}, nil
}

func (f *fakeAPI) BroadcastCreate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	f.created = append(f.created, b)
	b.ID = 42
	return b, nil
}

func (f *fakeAPI) BroadcastUpdate(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	f.updated = append(f.updated, b)
	return b, nil
}

func (f *fakeAPI) BroadcastDelete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Navbar(ctx context.Context) ([]domain.NavbarProjectData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navCalls++
	return f.navbar, f.navErr
}

func (f *fakeAPI) UserMe(ctx context.Context) (domain.User, error) {
	return f.user, f.userErr
}

func TestBroadcastService(t *testing.T) {
	api := &fakeAPI{}
	svc := NewBroadcastService(api)
	ctx := context.Background()

	t.Run("update validates before sending", func(t *testing.T) {
		_, err := svc.UpdateBroadcast(ctx, domain.Broadcast{ID: 1, Title: "", Level: domain.LevelInfo})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
		assert.Empty(t, api.updated)

		b, err := svc.UpdateBroadcast(ctx, domain.Broadcast{ID: 1, Title: "ok", Level: domain.LevelWarning})
		require.NoError(t, err)
		assert.Equal(t, "ok", b.Title)
		assert.Len(t, api.updated, 1)
	})

	t.Run("create defaults level", func(t *testing.T) {
		b, err := svc.CreateBroadcast(ctx, domain.Broadcast{Title: "draft"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), b.ID)
		assert.Equal(t, domain.LevelInfo, api.created[0].Level)
	})

	t.Run("delete by id", func(t *testing.T) {
		require.NoError(t, svc.DeleteBroadcast(ctx, domain.Broadcast{ID: 9}))
		assert.Equal(t, []int64{9}, api.deleted)
	})
}

func TestAuthStore(t *testing.T) {
	store := NewAuthStore(domain.User{Username: "old"})
	api := &fakeAPI{user: domain.User{Username: "new", Admin: true}}

	require.NoError(t, store.Refresh(context.Background(), api))
	assert.Equal(t, "new", store.User().Username)
	assert.True(t, store.User().Admin)

	api.userErr = errors.New("boom")
	require.Error(t, store.Refresh(context.Background(), api))
	assert.Equal(t, "new", store.User().Username, "profile kept on error")
}

func TestNavbarService(t *testing.T) {
	api := &fakeAPI{navbar: []domain.NavbarProjectData{{Key: "P", Type: domain.NavbarTypeProject}}}
	svc := NewNavbarService(context.Background(), api)

	sub := svc.Data(true)
	defer sub.Cancel()

	select {
	case data := <-sub.C():
		require.Len(t, data, 1)
		assert.Equal(t, "P", data[0].Key)
	case <-time.After(time.Second):
		t.Fatal("no navbar data")
	}

	// a later subscriber gets the cached value without a fetch
	late := svc.Data(false)
	defer late.Cancel()
	select {
	case data := <-late.C():
		assert.Len(t, data, 1)
	case <-time.After(time.Second):
		t.Fatal("no replay")
	}
	api.mu.Lock()
	assert.Equal(t, 1, api.navCalls)
	api.mu.Unlock()
}

func TestNavbarServiceRefreshError(t *testing.T) {
	api := &fakeAPI{navErr: errors.New("down")}
	svc := NewNavbarService(context.Background(), api)
	assert.Error(t, svc.Refresh(context.Background()))
}

func TestNavbarServiceRunClosesFeed(t *testing.T) {
	api := &fakeAPI{}
	svc := NewNavbarService(context.Background(), api)
	sub := svc.Data(false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	// at least one periodic refresh publishes
	select {
	case <-sub.C():
	case <-time.After(time.Second):
		t.Fatal("no periodic refresh")
	}

	cancel()
	<-done

	for range sub.C() {
	}
}

func TestLevelService(t *testing.T) {
	assert.Len(t, LevelService{}.BroadcastLevels(), 2)
}
