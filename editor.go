package grocer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// EditorMode tells whether an editor creates a new item or edits an existing one
type EditorMode string

const (
	EditorModeAdd  EditorMode = "ADD"
	EditorModeEdit EditorMode = "EDIT"
)

// String returns the string representation
func (m EditorMode) String() string {
	return string(m)
}

// ItemEditor holds the input state of the add/edit item dialog.
// When created without an item it is in add mode, otherwise in edit mode.
type ItemEditor struct {
	Name            string
	AdditionalNotes string
	Price           string
	TagInput        string

	onSale   bool
	tags     []ListTag
	listTags []ListTag
	original *ListItem
}

// NewItemEditor opens an editor against the tags of list. A nil item opens add mode.
func NewItemEditor(list *List, item *ListItem) *ItemEditor {
	e := &ItemEditor{}
	if list != nil {
		e.listTags = cloneTags(list.Tags)
	}
	if item != nil {
		c := item.Clone()
		e.original = &c
	}
	e.Revert()
	return e
}

// Mode returns the editor mode
func (e *ItemEditor) Mode() EditorMode {
	if e.original == nil {
		return EditorModeAdd
	}
	return EditorModeEdit
}

// Title returns the dialog title
func (e *ItemEditor) Title() string {
	if e.Mode() == EditorModeEdit {
		return "Edit Item"
	}
	return "Add New Item"
}

// ConfirmLabel returns the label of the confirm button
func (e *ItemEditor) ConfirmLabel() string {
	if e.Mode() == EditorModeEdit {
		return "Save"
	}
	return "Add"
}

// CanDelete reports whether the dialog offers a delete button
func (e *ItemEditor) CanDelete() bool {
	return e.Mode() == EditorModeEdit
}

// ItemID returns the ID of the item being edited, 0 in add mode
func (e *ItemEditor) ItemID() int {
	if e.original == nil {
		return 0
	}
	return e.original.ID
}

// Tags returns the tags currently attached to the item
func (e *ItemEditor) Tags() []ListTag {
	return cloneTags(e.tags)
}

// OnSale returns the state of the on sale checkbox
func (e *ItemEditor) OnSale() bool {
	return e.onSale
}

// Reset clears every input, as when the dialog is closed. The mode is kept.
func (e *ItemEditor) Reset() {
	e.Name = ""
	e.AdditionalNotes = ""
	e.Price = ""
	e.TagInput = ""
	e.onSale = false
	e.tags = []ListTag{}
}

// Revert restores the inputs to the values the editor was opened with:
// blank in add mode, the original item's values in edit mode.
func (e *ItemEditor) Revert() {
	e.Reset()

	if e.original != nil {
		e.Name = e.original.Name
		e.AdditionalNotes = e.original.AdditionalNotes
		e.Price = e.original.Price
		e.tags = cloneTags(e.original.Tags)
		e.onSale = e.original.IsOnSale()
	}
}

// AddTag attaches a tag by name. Names are compared case-insensitively:
// a tag already on the item is returned unchanged, a tag already on the
// list is reused, anything else becomes a new tag with the next free ID
// and a random colour. added reports whether the item's tag set changed.
func (e *ItemEditor) AddTag(name string) (tag ListTag, added bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ListTag{}, false, NewValidationError("tag", "tag name must not be empty")
	}

	if existing, ok := findTagByName(e.tags, name); ok {
		return existing, false, nil
	}

	if existing, ok := findTagByName(e.listTags, name); ok {
		tag = existing
	} else {
		known := append(cloneTags(e.listTags), NewItems(e.listTags, e.tags)...)
		tag = ListTag{
			ID:     NextID(known),
			Name:   name,
			Colour: RandomColour(),
		}
	}

	e.tags = append(e.tags, tag)
	if isOnSaleTag(tag) {
		e.onSale = true
	}
	return tag, true, nil
}

// SubmitTagInput adds the tag typed into TagInput and clears the input
func (e *ItemEditor) SubmitTagInput() (ListTag, bool, error) {
	tag, added, err := e.AddTag(e.TagInput)
	if err != nil {
		return tag, added, err
	}
	e.TagInput = ""
	return tag, added, nil
}

// RemoveTag removes the tag at index, shifting the following tags down
func (e *ItemEditor) RemoveTag(index int) error {
	if index < 0 || index >= len(e.tags) {
		return NewValidationError("tag", fmt.Sprintf("tag index %d out of range", index))
	}

	removed := e.tags[index]
	e.tags = append(e.tags[:index:index], e.tags[index+1:]...)

	if isOnSaleTag(removed) {
		e.onSale = false
	}
	return nil
}

// SetOnSale toggles the on sale checkbox, keeping the On Sale tag in sync
func (e *ItemEditor) SetOnSale(onSale bool) {
	if onSale == e.onSale {
		return
	}

	if onSale {
		// AddTag cannot fail for a non-empty name
		_, _, _ = e.AddTag(OnSaleTagName)
		e.onSale = true
		return
	}

	for i, tag := range e.tags {
		if isOnSaleTag(tag) {
			_ = e.RemoveTag(i)
			break
		}
	}
	e.onSale = false
}

// Build validates the inputs and returns the resulting item together with
// the tags that are not yet part of the list. In add mode the item ID is 0.
func (e *ItemEditor) Build(cfg ServiceConfig) (ListItem, []ListTag, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return ListItem{}, nil, NewValidationError("name", "item name must not be empty")
	}
	if utf8.RuneCountInString(name) > cfg.MaxNameLength {
		return ListItem{}, nil, NewValidationError("name", fmt.Sprintf("item name must be at most %d characters", cfg.MaxNameLength))
	}

	notes := strings.TrimSpace(e.AdditionalNotes)
	if utf8.RuneCountInString(notes) > cfg.MaxNotesLength {
		return ListItem{}, nil, NewValidationError("additionalNotes", fmt.Sprintf("notes must be at most %d characters", cfg.MaxNotesLength))
	}

	price, err := NormalizePrice(e.Price)
	if err != nil {
		return ListItem{}, nil, err
	}

	item := ListItem{
		ID:              e.ItemID(),
		Name:            name,
		AdditionalNotes: notes,
		Price:           price,
		Tags:            cloneTags(e.tags),
	}

	return item, NewItems(e.listTags, item.Tags), nil
}

// NormalizePrice trims a price input and checks it is a non-negative decimal
// with at most two fractional digits. A leading "$" is accepted and dropped.
func NormalizePrice(price string) (string, error) {
	price = strings.TrimPrefix(strings.TrimSpace(price), "$")
	if price == "" {
		return "", nil
	}
	if !pricePattern.MatchString(price) {
		return "", NewValidationError("price", fmt.Sprintf("invalid price %q", price))
	}
	return price, nil
}
