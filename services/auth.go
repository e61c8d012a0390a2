package services

import (
	"context"
	"sync"

	"github.com/deemkeen/herald/domain"
)

type UserAPI interface {
	UserMe(ctx context.Context) (domain.User, error)
}

// AuthStore holds the profile of the authenticated user.
type AuthStore struct {
	mu   sync.RWMutex
	user domain.User
}

func NewAuthStore(user domain.User) *AuthStore {
	return &AuthStore{user: user}
}

func (a *AuthStore) User() domain.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *AuthStore) SetUser(u domain.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

// Refresh reloads the profile. The previous one is kept on error.
func (a *AuthStore) Refresh(ctx context.Context, api UserAPI) error {
	u, err := api.UserMe(ctx)
	if err != nil {
		return err
	}
	a.SetUser(u)
	return nil
}
