package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sicko7947/grocer"
)

// MemoryStore implements grocer.ListStore using in-memory storage (for testing)
type MemoryStore struct {
	lists map[int]*grocer.List
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory list store
func NewMemoryStore() grocer.ListStore {
	return &MemoryStore{
		lists: make(map[int]*grocer.List),
	}
}

func (s *MemoryStore) CreateList(ctx context.Context, list *grocer.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[list.ID]; exists {
		return grocer.NewError(grocer.ErrCodeConflict, fmt.Sprintf("list %d already exists", list.ID))
	}
	if list.InviteCode != "" && s.findByInviteCodeLocked(list.InviteCode) != nil {
		return grocer.NewError(grocer.ErrCodeConflict, "invite code already in use")
	}

	s.lists[list.ID] = list.Clone()
	return nil
}

func (s *MemoryStore) GetList(ctx context.Context, listID int) (*grocer.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, exists := s.lists[listID]
	if !exists {
		return nil, grocer.NewNotFoundError("list", listID)
	}

	return list.Clone(), nil
}

func (s *MemoryStore) UpdateList(ctx context.Context, list *grocer.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[list.ID]; !exists {
		return grocer.NewNotFoundError("list", list.ID)
	}
	if list.InviteCode != "" {
		if other := s.findByInviteCodeLocked(list.InviteCode); other != nil && other.ID != list.ID {
			return grocer.NewError(grocer.ErrCodeConflict, "invite code already in use")
		}
	}

	s.lists[list.ID] = list.Clone()
	return nil
}

func (s *MemoryStore) DeleteList(ctx context.Context, listID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[listID]; !exists {
		return grocer.NewNotFoundError("list", listID)
	}

	delete(s.lists, listID)
	return nil
}

func (s *MemoryStore) ListLists(ctx context.Context, filter grocer.ListFilter) ([]*grocer.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.lists))
	for id := range s.lists {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lists := []*grocer.List{}
	for _, id := range ids {
		list := s.lists[id]
		if !filter.Matches(list) {
			continue
		}

		lists = append(lists, list.Clone())

		// Apply limit
		if filter.Limit > 0 && len(lists) >= filter.Limit {
			break
		}
	}

	return lists, nil
}

// Query operations

func (s *MemoryStore) FindByInviteCode(ctx context.Context, code string) (*grocer.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if list := s.findByInviteCodeLocked(code); list != nil {
		return list.Clone(), nil
	}
	return nil, grocer.NewError(grocer.ErrCodeNotFound, "no list with that invite code")
}

func (s *MemoryStore) findByInviteCodeLocked(code string) *grocer.List {
	if code == "" {
		return nil
	}
	for _, list := range s.lists {
		if list.InviteCode == code {
			return list
		}
	}
	return nil
}
