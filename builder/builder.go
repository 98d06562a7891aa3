package builder

import (
	"fmt"
	"strings"

	"github.com/sicko7947/grocer"
)

// ListBuilder provides a fluent API for building lists
type ListBuilder struct {
	list *grocer.List
	errs []error
}

// NewList creates a new builder for an owned list
func NewList(id int, name string) *ListBuilder {
	return &ListBuilder{
		list: &grocer.List{
			ID:      id,
			Name:    name,
			Tags:    []grocer.ListTag{},
			Items:   []grocer.ListItem{},
			IsOwner: true,
		},
	}
}

// Shared marks the list as joined from someone else
func (b *ListBuilder) Shared() *ListBuilder {
	b.list.IsOwner = false
	return b
}

// WithInviteCode sets the invite code
func (b *ListBuilder) WithInviteCode(code string) *ListBuilder {
	b.list.InviteCode = code
	return b
}

// WithTag adds a list tag with the next free ID. An empty colour picks a random one.
func (b *ListBuilder) WithTag(name, colour string) *ListBuilder {
	b.tag(name, colour)
	return b
}

func (b *ListBuilder) tag(name, colour string) grocer.ListTag {
	name = strings.TrimSpace(name)
	if existing, ok := b.list.FindTagByName(name); ok {
		return existing
	}
	if colour == "" {
		colour = grocer.RandomColour()
	}
	tag := grocer.ListTag{
		ID:     grocer.NextID(b.list.Tags),
		Name:   name,
		Colour: colour,
	}
	b.list.Tags = append(b.list.Tags, tag)
	return tag
}

// WithItem adds an item with the next free ID
func (b *ListBuilder) WithItem(name string, opts ...ItemOption) *ListBuilder {
	fields := &itemFields{}
	for _, opt := range opts {
		opt(fields)
	}

	price, err := grocer.NormalizePrice(fields.price)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("item %q: %w", name, err))
	}

	item := grocer.ListItem{
		ID:              grocer.NextID(b.list.Items),
		Name:            name,
		AdditionalNotes: fields.notes,
		Price:           price,
		Tags:            []grocer.ListTag{},
	}

	names := fields.tags
	if fields.onSale {
		names = append(names, grocer.OnSaleTagName)
	}
	for _, tagName := range names {
		tag := b.tag(tagName, "")
		if !item.HasTag(tag.ID) {
			item.Tags = append(item.Tags, tag)
		}
	}

	b.list.Items = append(b.list.Items, item)
	return b
}

// Build finalizes and validates the list
func (b *ListBuilder) Build() (*grocer.List, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid list: %w", b.errs[0])
	}
	if err := ValidateList(b.list); err != nil {
		return nil, fmt.Errorf("invalid list: %w", err)
	}
	return b.list.Clone(), nil
}

// MustBuild finalizes and validates the list, panics on error
func (b *ListBuilder) MustBuild() *grocer.List {
	list, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build list: %v", err))
	}
	return list
}
