package web

import (
	"sort"
	"sync"
	"time"

	"github.com/deemkeen/herald/domain"
)

// memStore keeps the fixture data of the dev API. Nothing is persisted.
type memStore struct {
	mu         sync.RWMutex
	seq        int64
	broadcasts map[int64]domain.Broadcast
	read       map[int64]bool
	navbar     []domain.NavbarProjectData
	user       domain.User
}

func newMemStore(user domain.User) *memStore {
	return &memStore{
		broadcasts: map[int64]domain.Broadcast{},
		read:       map[int64]bool{},
		user:       user,
	}
}

func (s *memStore) list() []domain.Broadcast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Broadcast, 0, len(s.broadcasts))
	for id, b := range s.broadcasts {
		b.Read = s.read[id]
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *memStore) get(id int64) (domain.Broadcast, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.broadcasts[id]
	b.Read = s.read[id]
	return b, ok
}

func (s *memStore) create(b domain.Broadcast) domain.Broadcast {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now().UTC()
	b.ID = s.seq
	b.Created = now
	b.Updated = now
	b.Read = false
	s.broadcasts[b.ID] = b
	return b
}

func (s *memStore) update(b domain.Broadcast) (domain.Broadcast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.broadcasts[b.ID]
	if !ok {
		return domain.Broadcast{}, false
	}
	b.Created = old.Created
	b.Updated = time.Now().UTC()
	b.Read = false
	s.broadcasts[b.ID] = b
	return b, true
}

func (s *memStore) delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.broadcasts[id]; !ok {
		return false
	}
	delete(s.broadcasts, id)
	delete(s.read, id)
	return true
}

func (s *memStore) markRead(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.broadcasts[id]; !ok {
		return false
	}
	s.read[id] = true
	return true
}

func (s *memStore) navbarData() []domain.NavbarProjectData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.NavbarProjectData(nil), s.navbar...)
}

func (s *memStore) currentUser() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
