package service

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
)

// List creation retries with backoff when a new list collides on ID or invite code
const (
	createAttempts   = 3
	createRetryDelay = 5 * time.Millisecond
)

var colourPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Service applies list, item and tag mutations on top of a ListStore.
// Every mutation is a read-modify-write of one list and is serialised
// within the process.
type Service struct {
	store         grocer.ListStore
	logger        zerolog.Logger
	config        grocer.ServiceConfig
	newInviteCode func(length int) string
	mu            sync.Mutex
}

// ItemInput carries the fields of the item dialog
type ItemInput struct {
	Name            string   `json:"name"`
	AdditionalNotes string   `json:"additionalNotes"`
	Price           string   `json:"price"`
	OnSale          bool     `json:"onSale"`
	Tags            []string `json:"tags"`
}

// NewService creates a list service with optional configuration.
// If no logger is provided, a console logger at Info level is used.
// If no config is provided, grocer.DefaultServiceConfig is used.
func NewService(store grocer.ListStore, opts ...Option) (*Service, error) {
	// Default logger: pretty console output, Info level
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	svc := &Service{
		store:         store,
		logger:        defaultLogger,
		config:        grocer.DefaultServiceConfig,
		newInviteCode: DefaultInviteCode,
	}

	// Apply options
	for _, opt := range opts {
		opt(svc)
	}

	if err := svc.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service config: %w", err)
	}

	return svc, nil
}

// DefaultInviteCode returns length upper-case hex characters taken from a random UUID
func DefaultInviteCode(length int) string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if length > len(code) {
		length = len(code)
	}
	return code[:length]
}

// Config returns the service configuration
func (s *Service) Config() grocer.ServiceConfig {
	return s.config
}

func (s *Service) validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", grocer.NewValidationError(field, "name must not be empty")
	}
	if utf8.RuneCountInString(name) > s.config.MaxNameLength {
		return "", grocer.NewValidationError(field, fmt.Sprintf("name must be at most %d characters", s.config.MaxNameLength))
	}
	return name, nil
}

// List operations

// Lists returns the stored lists matching filter, ordered by ID
func (s *Service) Lists(ctx context.Context, filter grocer.ListFilter) ([]*grocer.List, error) {
	return s.store.ListLists(ctx, filter)
}

// GetList retrieves a list
func (s *Service) GetList(ctx context.Context, listID int) (*grocer.List, error) {
	return s.store.GetList(ctx, listID)
}

// CreateList creates a new owned list with a fresh invite code
func (s *Service) CreateList(ctx context.Context, name string) (*grocer.List, error) {
	name, err := s.validateName("name", name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; ; attempt++ {
		existing, err := s.store.ListLists(ctx, grocer.ListFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to load lists: %w", err)
		}

		list := &grocer.List{
			ID:         grocer.NextID(derefLists(existing)),
			Name:       name,
			Tags:       []grocer.ListTag{},
			Items:      []grocer.ListItem{},
			IsOwner:    true,
			InviteCode: s.newInviteCode(s.config.InviteCodeLength),
		}

		err = s.store.CreateList(ctx, list)
		if err == nil {
			grocer.LogListCreated(s.logger, list.ID, list.Name)
			return list, nil
		}
		if grocer.ErrorCode(err) != grocer.ErrCodeConflict || attempt >= createAttempts {
			return nil, fmt.Errorf("failed to create list: %w", err)
		}

		delay := grocer.CalculateBackoff(createRetryDelay, attempt, grocer.BackoffExponential)
		s.logger.Debug().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("List creation collided, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// RenameList changes the name of a list
func (s *Service) RenameList(ctx context.Context, listID int, name string) (*grocer.List, error) {
	name, err := s.validateName("name", name)
	if err != nil {
		return nil, err
	}

	var oldName string
	list, err := s.mutate(ctx, listID, func(list *grocer.List) error {
		oldName = list.Name
		list.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}

	grocer.LogListRenamed(s.logger, listID, oldName, name)
	return list, nil
}

// DeleteList removes a list
func (s *Service) DeleteList(ctx context.Context, listID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteList(ctx, listID); err != nil {
		return err
	}

	grocer.LogListDeleted(s.logger, listID)
	return nil
}

// JoinList would redeem an invite code for someone else's list.
// Redemption needs a shared backend, so the request is only logged.
func (s *Service) JoinList(ctx context.Context, inviteCode string) error {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return grocer.NewValidationError("inviteCode", "invite code must not be empty")
	}

	grocer.LogListJoinRequested(s.logger, inviteCode)
	return grocer.NewError(grocer.ErrCodeNotImplemented, "joining shared lists is not available")
}

// InviteCode returns the invite code of an owned list, generating one if missing
func (s *Service) InviteCode(ctx context.Context, listID int) (string, error) {
	generated := false
	list, err := s.mutate(ctx, listID, func(list *grocer.List) error {
		if !list.IsOwner {
			return grocer.NewError(grocer.ErrCodeForbidden, "only the owner can invite others")
		}
		if list.InviteCode == "" {
			list.InviteCode = s.newInviteCode(s.config.InviteCodeLength)
			generated = true
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	grocer.LogInviteIssued(s.logger, listID, generated)
	return list.InviteCode, nil
}

// Perform runs a list management dialog action. input is the name for
// create and edit, the invite code for join, and ignored otherwise.
// Delete and join return a nil list.
func (s *Service) Perform(ctx context.Context, action grocer.ManagementAction, listID int, input string) (*grocer.List, error) {
	switch action {
	case grocer.ActionCreate:
		return s.CreateList(ctx, input)
	case grocer.ActionJoin:
		return nil, s.JoinList(ctx, input)
	case grocer.ActionEdit:
		return s.RenameList(ctx, listID, input)
	case grocer.ActionInvite:
		if _, err := s.InviteCode(ctx, listID); err != nil {
			return nil, err
		}
		return s.store.GetList(ctx, listID)
	case grocer.ActionDelete:
		return nil, s.DeleteList(ctx, listID)
	default:
		return nil, grocer.NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}
}

// Item operations

// OpenEditor returns an item editor for a list: add mode when itemID is 0,
// edit mode loaded with the item otherwise.
func (s *Service) OpenEditor(ctx context.Context, listID, itemID int) (*grocer.ItemEditor, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if itemID == 0 {
		return grocer.NewItemEditor(list, nil), nil
	}

	index := grocer.IndexByID(list.Items, itemID)
	if index == -1 {
		return nil, grocer.NewNotFoundError("item", itemID)
	}
	return grocer.NewItemEditor(list, &list.Items[index]), nil
}

// SaveItem commits an editor: a new item in add mode, a replacement in edit mode.
// Tags new to the list are appended to the list's tags.
func (s *Service) SaveItem(ctx context.Context, listID int, editor *grocer.ItemEditor) (grocer.ListItem, error) {
	item, _, err := editor.Build(s.config)
	if err != nil {
		return grocer.ListItem{}, err
	}

	var created []grocer.ListTag
	_, err = s.mutate(ctx, listID, func(list *grocer.List) error {
		item.Tags, created = reconcileTags(list, item.Tags)

		if editor.Mode() == grocer.EditorModeAdd {
			item.ID = grocer.NextID(list.Items)
			list.Items = append(list.Items, item)
			return nil
		}

		index := grocer.IndexByID(list.Items, item.ID)
		if index == -1 {
			return grocer.NewNotFoundError("item", item.ID)
		}
		list.Items[index] = item
		return nil
	})
	if err != nil {
		return grocer.ListItem{}, err
	}

	for _, tag := range created {
		grocer.LogTagCreated(s.logger, listID, tag)
	}
	if editor.Mode() == grocer.EditorModeAdd {
		grocer.LogItemAdded(s.logger, listID, item.ID, item.Name)
	} else {
		grocer.LogItemUpdated(s.logger, listID, item.ID)
	}

	return item, nil
}

// AddItem adds an item built from input
func (s *Service) AddItem(ctx context.Context, listID int, input ItemInput) (grocer.ListItem, error) {
	editor, err := s.OpenEditor(ctx, listID, 0)
	if err != nil {
		return grocer.ListItem{}, err
	}
	if err := applyInput(editor, input); err != nil {
		return grocer.ListItem{}, err
	}
	return s.SaveItem(ctx, listID, editor)
}

// UpdateItem replaces every field of an item with input
func (s *Service) UpdateItem(ctx context.Context, listID, itemID int, input ItemInput) (grocer.ListItem, error) {
	if itemID == 0 {
		return grocer.ListItem{}, grocer.NewNotFoundError("item", itemID)
	}
	editor, err := s.OpenEditor(ctx, listID, itemID)
	if err != nil {
		return grocer.ListItem{}, err
	}
	if err := applyInput(editor, input); err != nil {
		return grocer.ListItem{}, err
	}
	return s.SaveItem(ctx, listID, editor)
}

// DeleteItem removes an item from a list
func (s *Service) DeleteItem(ctx context.Context, listID, itemID int) error {
	_, err := s.mutate(ctx, listID, func(list *grocer.List) error {
		index := grocer.IndexByID(list.Items, itemID)
		if index == -1 {
			return grocer.NewNotFoundError("item", itemID)
		}
		list.Items = append(list.Items[:index], list.Items[index+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	grocer.LogItemDeleted(s.logger, listID, itemID)
	return nil
}

// Items returns the items of a list visible under the given tag filters.
// No tag IDs means every item; otherwise items carrying any of the tags.
func (s *Service) Items(ctx context.Context, listID int, tagIDs []int) ([]grocer.ListItem, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	filter := grocer.NewTagFilter(list.Tags)
	seen := make(map[int]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := filter.ToggleByID(id); err != nil {
			return nil, err
		}
	}

	return filter.Visible(list.Items), nil
}

// Tag operations

// Tags returns the tags of a list
func (s *Service) Tags(ctx context.Context, listID int) ([]grocer.ListTag, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return list.Tags, nil
}

// RemoveTag deletes a tag from a list and strips it from every item
func (s *Service) RemoveTag(ctx context.Context, listID, tagID int) error {
	affected := 0
	_, err := s.mutate(ctx, listID, func(list *grocer.List) error {
		index := grocer.IndexByID(list.Tags, tagID)
		if index == -1 {
			return grocer.NewNotFoundError("tag", tagID)
		}
		list.Tags = append(list.Tags[:index], list.Tags[index+1:]...)

		for i := range list.Items {
			if at := grocer.IndexByID(list.Items[i].Tags, tagID); at != -1 {
				list.Items[i].Tags = append(list.Items[i].Tags[:at], list.Items[i].Tags[at+1:]...)
				affected++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	grocer.LogTagRemoved(s.logger, listID, tagID, affected)
	return nil
}

// RecolourTag changes the colour of a tag on the list and on every item carrying it
func (s *Service) RecolourTag(ctx context.Context, listID, tagID int, colour string) (grocer.ListTag, error) {
	colour = strings.TrimSpace(colour)
	if !colourPattern.MatchString(colour) {
		return grocer.ListTag{}, grocer.NewValidationError("colour", fmt.Sprintf("invalid colour %q", colour))
	}
	colour = strings.ToLower(colour)

	var tag grocer.ListTag
	_, err := s.mutate(ctx, listID, func(list *grocer.List) error {
		index := grocer.IndexByID(list.Tags, tagID)
		if index == -1 {
			return grocer.NewNotFoundError("tag", tagID)
		}
		list.Tags[index].Colour = colour
		tag = list.Tags[index]

		for i := range list.Items {
			if at := grocer.IndexByID(list.Items[i].Tags, tagID); at != -1 {
				list.Items[i].Tags[at].Colour = colour
			}
		}
		return nil
	})
	if err != nil {
		return grocer.ListTag{}, err
	}
	return tag, nil
}

// mutate loads a list, applies fn and stores the result under the service lock
func (s *Service) mutate(ctx context.Context, listID int, fn func(list *grocer.List) error) (*grocer.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if err := fn(list); err != nil {
		return nil, err
	}

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save list %d: %w", listID, err)
	}

	logger := grocer.ListLogger(s.logger, listID)
	logger.Debug().
		Int("items", len(list.Items)).
		Int("tags", len(list.Tags)).
		Msg("List saved")
	return list, nil
}

// reconcileTags maps the tags of an item onto the list's tags. A tag whose
// name already exists on the list is replaced by the list's tag; any other
// tag is appended to the list under the next free ID. Duplicate tags on the
// item collapse to their first occurrence. It returns the item's tags and
// the tags added to the list.
func reconcileTags(list *grocer.List, tags []grocer.ListTag) ([]grocer.ListTag, []grocer.ListTag) {
	resolved := make([]grocer.ListTag, 0, len(tags))
	created := []grocer.ListTag{}

	for _, tag := range tags {
		if existing, ok := list.FindTagByName(tag.Name); ok {
			tag = existing
		} else {
			tag.ID = grocer.NextID(list.Tags)
			if tag.Colour == "" {
				tag.Colour = grocer.RandomColour()
			}
			list.Tags = append(list.Tags, tag)
			created = append(created, tag)
		}

		if grocer.IndexByID(resolved, tag.ID) == -1 {
			resolved = append(resolved, tag)
		}
	}

	return resolved, created
}

// applyInput replaces the editor's inputs with input
func applyInput(editor *grocer.ItemEditor, input ItemInput) error {
	editor.Name = input.Name
	editor.AdditionalNotes = input.AdditionalNotes
	editor.Price = input.Price

	for len(editor.Tags()) > 0 {
		if err := editor.RemoveTag(0); err != nil {
			return err
		}
	}
	for _, name := range input.Tags {
		if _, _, err := editor.AddTag(name); err != nil {
			return err
		}
	}
	if input.OnSale {
		editor.SetOnSale(true)
	}
	return nil
}

func derefLists(lists []*grocer.List) []grocer.List {
	out := make([]grocer.List, len(lists))
	for i, l := range lists {
		out[i] = *l
	}
	return out
}
