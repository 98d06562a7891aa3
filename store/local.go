package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
)

// LocalStore implements grocer.ListStore by keeping the whole list array
// as a single JSON document under one key of a KeyValue backend, the way
// the app keeps its lists in on-device storage.
type LocalStore struct {
	data grocer.LocalData
	key  string
	mu   sync.Mutex
}

// NewLocalStore creates a list store persisting under key in kv
func NewLocalStore(kv grocer.KeyValue, key string, logger zerolog.Logger) *LocalStore {
	if key == "" {
		key = grocer.DefaultStorageKey
	}
	return &LocalStore{
		data: grocer.NewLocalData(kv, logger),
		key:  key,
	}
}

// load returns the persisted lists, empty when nothing was stored yet
func (s *LocalStore) load(ctx context.Context) ([]grocer.List, error) {
	lists, found, err := grocer.LoadTyped[[]grocer.List](s.data, ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !found || lists == nil {
		return []grocer.List{}, nil
	}
	return lists, nil
}

func (s *LocalStore) save(ctx context.Context, lists []grocer.List) error {
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
	return grocer.StoreTyped(s.data, ctx, s.key, lists)
}

func (s *LocalStore) CreateList(ctx context.Context, list *grocer.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return err
	}

	if grocer.IndexByID(lists, list.ID) != -1 {
		return grocer.NewError(grocer.ErrCodeConflict, fmt.Sprintf("list %d already exists", list.ID))
	}
	if list.InviteCode != "" && indexByInviteCode(lists, list.InviteCode) != -1 {
		return grocer.NewError(grocer.ErrCodeConflict, "invite code already in use")
	}

	lists = append(lists, *list.Clone())
	return s.save(ctx, lists)
}

func (s *LocalStore) GetList(ctx context.Context, listID int) (*grocer.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	index := grocer.IndexByID(lists, listID)
	if index == -1 {
		return nil, grocer.NewNotFoundError("list", listID)
	}
	return lists[index].Clone(), nil
}

func (s *LocalStore) UpdateList(ctx context.Context, list *grocer.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return err
	}

	index := grocer.IndexByID(lists, list.ID)
	if index == -1 {
		return grocer.NewNotFoundError("list", list.ID)
	}
	if list.InviteCode != "" {
		if other := indexByInviteCode(lists, list.InviteCode); other != -1 && other != index {
			return grocer.NewError(grocer.ErrCodeConflict, "invite code already in use")
		}
	}

	lists[index] = *list.Clone()
	return s.save(ctx, lists)
}

func (s *LocalStore) DeleteList(ctx context.Context, listID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return err
	}

	index := grocer.IndexByID(lists, listID)
	if index == -1 {
		return grocer.NewNotFoundError("list", listID)
	}

	lists = append(lists[:index], lists[index+1:]...)
	return s.save(ctx, lists)
}

func (s *LocalStore) ListLists(ctx context.Context, filter grocer.ListFilter) ([]*grocer.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := []*grocer.List{}
	for i := range lists {
		if !filter.Matches(&lists[i]) {
			continue
		}
		result = append(result, lists[i].Clone())
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *LocalStore) FindByInviteCode(ctx context.Context, code string) (*grocer.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	index := indexByInviteCode(lists, code)
	if index == -1 {
		return nil, grocer.NewError(grocer.ErrCodeNotFound, "no list with that invite code")
	}
	return lists[index].Clone(), nil
}

func indexByInviteCode(lists []grocer.List, code string) int {
	if code == "" {
		return -1
	}
	for i, list := range lists {
		if list.InviteCode == code {
			return i
		}
	}
	return -1
}

// Verify interface compliance
var _ grocer.ListStore = (*LocalStore)(nil)
