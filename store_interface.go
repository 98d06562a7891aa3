package grocer

import "context"

// ListStore defines the persistence interface for lists
type ListStore interface {
	CreateList(ctx context.Context, list *List) error
	GetList(ctx context.Context, listID int) (*List, error)
	UpdateList(ctx context.Context, list *List) error
	DeleteList(ctx context.Context, listID int) error
	ListLists(ctx context.Context, filter ListFilter) ([]*List, error)

	// Queries
	FindByInviteCode(ctx context.Context, code string) (*List, error)
}

// ListFilter defines filtering criteria for listing lists
type ListFilter struct {
	OwnedOnly  bool
	SharedOnly bool
	Limit      int
}

// Matches reports whether the list satisfies the filter (Limit is applied by the store)
func (f ListFilter) Matches(list *List) bool {
	if f.OwnedOnly && !list.IsOwner {
		return false
	}
	if f.SharedOnly && list.IsOwner {
		return false
	}
	return true
}

// KeyValue is a local key-value storage backend holding opaque values.
// Get returns ErrKeyNotFound when the key is absent.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
