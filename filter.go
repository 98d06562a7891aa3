package grocer

import "time"

// Filter panel animation parameters
const (
	FilterTransitionDuration = 150 * time.Millisecond
	FilterIconOpenDegrees    = -180.0
)

// FilterHeightEasing is the cubic bezier used for the panel height
var FilterHeightEasing = [4]float64{0, 0.77, 0.82, 0.99}

// Easing identifies an animation timing curve
type Easing string

const (
	EasingLinear Easing = "LINEAR"
	EasingBezier Easing = "BEZIER"
)

// Transition describes an animated property change
type Transition struct {
	From     float64
	To       float64
	Duration time.Duration
	Easing   Easing
}

// PanelTransition is the pair of animations run when the filter panel opens or closes
type PanelTransition struct {
	Open     bool
	Rotation Transition
	Height   Transition
}

// TagFilter tracks which list tags are active as item filters.
// Flags are kept parallel to the list's tag order.
type TagFilter struct {
	tags   []ListTag
	active []bool

	open     bool
	rotation float64
	height   float64
	measured float64
}

// NewTagFilter creates a filter over tags with every flag off and the panel closed
func NewTagFilter(tags []ListTag) *TagFilter {
	return &TagFilter{
		tags:   cloneTags(tags),
		active: make([]bool, len(tags)),
	}
}

// Tags returns the tags the filter is defined over
func (f *TagFilter) Tags() []ListTag {
	return cloneTags(f.tags)
}

// IsActive reports whether the tag at index is active
func (f *TagFilter) IsActive(index int) bool {
	return index >= 0 && index < len(f.active) && f.active[index]
}

// Toggle flips the flag of the tag at index
func (f *TagFilter) Toggle(index int) error {
	if index < 0 || index >= len(f.active) {
		return NewValidationError("filter", "filter index out of range")
	}
	f.active[index] = !f.active[index]
	return nil
}

// ToggleByID flips the flag of the tag with the given ID
func (f *TagFilter) ToggleByID(tagID int) error {
	index := IndexByID(f.tags, tagID)
	if index == -1 {
		return NewNotFoundError("tag", tagID)
	}
	return f.Toggle(index)
}

// Clear turns every flag off
func (f *TagFilter) Clear() {
	for i := range f.active {
		f.active[i] = false
	}
}

// Active returns the active tags in list order
func (f *TagFilter) Active() []ListTag {
	active := []ListTag{}
	for i, tag := range f.tags {
		if f.active[i] {
			active = append(active, tag)
		}
	}
	return active
}

// Visible returns the items shown under the current filters: every item
// when no filter is active, otherwise the items carrying at least one
// active tag.
func (f *TagFilter) Visible(items []ListItem) []ListItem {
	return FilterItems(items, f.Active())
}

// Sync replaces the tag set, carrying flags across by tag ID
func (f *TagFilter) Sync(tags []ListTag) {
	active := make([]bool, len(tags))
	for i, tag := range tags {
		if old := IndexByID(f.tags, tag.ID); old != -1 {
			active[i] = f.active[old]
		}
	}
	f.tags = cloneTags(tags)
	f.active = active

	if len(f.tags) == 0 {
		f.measured = 0
	}
}

// IsOpen reports whether the filter panel is expanded
func (f *TagFilter) IsOpen() bool {
	return f.open
}

// Measure records the laid out height of the panel content. A zero height
// is ignored unless the list has no tags.
func (f *TagFilter) Measure(height float64) {
	if height != 0 {
		f.measured = height
	} else if len(f.tags) == 0 {
		f.measured = 0
	}
}

// MeasuredHeight returns the last recorded content height
func (f *TagFilter) MeasuredHeight() float64 {
	return f.measured
}

// TogglePanel opens or closes the filter panel and returns the animations to run
func (f *TagFilter) TogglePanel() PanelTransition {
	f.open = !f.open

	rotationTarget, heightTarget := 0.0, 0.0
	if f.open {
		rotationTarget = FilterIconOpenDegrees
		heightTarget = f.measured
	}

	t := PanelTransition{
		Open: f.open,
		Rotation: Transition{
			From:     f.rotation,
			To:       rotationTarget,
			Duration: FilterTransitionDuration,
			Easing:   EasingLinear,
		},
		Height: Transition{
			From:     f.height,
			To:       heightTarget,
			Duration: FilterTransitionDuration,
			Easing:   EasingBezier,
		},
	}

	f.rotation = rotationTarget
	f.height = heightTarget
	return t
}

// FilterItems returns items carrying at least one of tags (matched by ID),
// or every item when tags is empty.
func FilterItems(items []ListItem, tags []ListTag) []ListItem {
	visible := []ListItem{}
	for _, item := range items {
		if len(tags) == 0 || itemHasAnyTag(item, tags) {
			visible = append(visible, item.Clone())
		}
	}
	return visible
}

func itemHasAnyTag(item ListItem, tags []ListTag) bool {
	for _, tag := range tags {
		if item.HasTag(tag.ID) {
			return true
		}
	}
	return false
}
