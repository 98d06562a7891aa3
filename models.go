package grocer

import "strings"

// OnSaleTagName is the reserved tag that marks an item as on sale
const OnSaleTagName = "On Sale"

// List is a named collection of items and tags, optionally shared via an invite code
type List struct {
	ID         int        `json:"id" dynamodbav:"id"`
	Name       string     `json:"name" dynamodbav:"name"`
	Tags       []ListTag  `json:"tags" dynamodbav:"tags"`
	Items      []ListItem `json:"items" dynamodbav:"items"`
	IsOwner    bool       `json:"isOwner" dynamodbav:"is_owner"`
	InviteCode string     `json:"inviteCode" dynamodbav:"invite_code,omitempty"`
}

// ListTag is a colour-coded category assignable to items
type ListTag struct {
	ID     int    `json:"id" dynamodbav:"id"`
	Name   string `json:"name" dynamodbav:"name"`
	Colour string `json:"colour" dynamodbav:"colour"`
}

// ListItem is a single entry in a list
type ListItem struct {
	ID              int       `json:"id" dynamodbav:"id"`
	Name            string    `json:"name" dynamodbav:"name"`
	AdditionalNotes string    `json:"additionalNotes" dynamodbav:"additional_notes,omitempty"`
	Price           string    `json:"price" dynamodbav:"price,omitempty"`
	Tags            []ListTag `json:"tags" dynamodbav:"tags"`
}

// GetID returns the list ID
func (l List) GetID() int { return l.ID }

// GetID returns the tag ID
func (t ListTag) GetID() int { return t.ID }

// GetID returns the item ID
func (i ListItem) GetID() int { return i.ID }

// IsOnSale reports whether the item carries the On Sale tag
func (i ListItem) IsOnSale() bool {
	for _, tag := range i.Tags {
		if isOnSaleTag(tag) {
			return true
		}
	}
	return false
}

// HasTag reports whether the item carries a tag with the given ID
func (i ListItem) HasTag(tagID int) bool {
	return IndexByID(i.Tags, tagID) != -1
}

// FindTagByName returns the list tag whose name matches (case-insensitive, trimmed)
func (l *List) FindTagByName(name string) (ListTag, bool) {
	return findTagByName(l.Tags, name)
}

// Clone returns a deep copy of the list
func (l *List) Clone() *List {
	c := *l
	c.Tags = cloneTags(l.Tags)
	c.Items = make([]ListItem, len(l.Items))
	for i, item := range l.Items {
		c.Items[i] = item.Clone()
	}
	return &c
}

// Clone returns a deep copy of the item
func (i ListItem) Clone() ListItem {
	i.Tags = cloneTags(i.Tags)
	return i
}

func cloneTags(tags []ListTag) []ListTag {
	out := make([]ListTag, len(tags))
	copy(out, tags)
	return out
}

func findTagByName(tags []ListTag, name string) (ListTag, bool) {
	key := normalizeTagName(name)
	for _, tag := range tags {
		if normalizeTagName(tag.Name) == key {
			return tag, true
		}
	}
	return ListTag{}, false
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// isOnSaleTag matches the On Sale tag the same way tag names are matched elsewhere
func isOnSaleTag(tag ListTag) bool {
	return normalizeTagName(tag.Name) == normalizeTagName(OnSaleTagName)
}

// ManagementAction is one of the list management dialogs
type ManagementAction string

const (
	ActionCreate ManagementAction = "create"
	ActionJoin   ManagementAction = "join"
	ActionEdit   ManagementAction = "edit"
	ActionInvite ManagementAction = "invite"
	ActionDelete ManagementAction = "delete"
)

// String returns the string representation
func (a ManagementAction) String() string {
	return string(a)
}

// IsValid returns true if the action is known
func (a ManagementAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionJoin, ActionEdit, ActionInvite, ActionDelete:
		return true
	}
	return false
}

// Title returns the dialog title for the action
func (a ManagementAction) Title() string {
	switch a {
	case ActionCreate:
		return "Create a New List"
	case ActionJoin:
		return "Join Someone Else's List"
	case ActionEdit:
		return "Edit List"
	case ActionInvite:
		return "Invite Others"
	case ActionDelete:
		return "Delete List"
	default:
		return ""
	}
}

// ConfirmLabel returns the label of the confirm button, empty when the dialog has none
func (a ManagementAction) ConfirmLabel() string {
	switch a {
	case ActionCreate:
		return "Create"
	case ActionJoin:
		return "Join"
	case ActionEdit:
		return "Save"
	case ActionDelete:
		return "Delete"
	default:
		return ""
	}
}

// IsDestructive reports whether the confirm button should be rendered as destructive
func (a ManagementAction) IsDestructive() bool {
	return a == ActionDelete
}
