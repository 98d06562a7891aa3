package builder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sicko7947/grocer"
)

var colourPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateList performs comprehensive validation on a list
func ValidateList(list *grocer.List) error {
	if list.ID <= 0 {
		return fmt.Errorf("list ID must be positive, got %d", list.ID)
	}
	if strings.TrimSpace(list.Name) == "" {
		return fmt.Errorf("list %d has no name", list.ID)
	}

	if err := ValidateTags(list.Tags); err != nil {
		return fmt.Errorf("list %d: %w", list.ID, err)
	}

	seen := make(map[int]bool, len(list.Items))
	for _, item := range list.Items {
		if item.ID <= 0 {
			return fmt.Errorf("item %q has non-positive ID %d", item.Name, item.ID)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item ID %d", item.ID)
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("item %d has no name", item.ID)
		}
		if _, err := grocer.NormalizePrice(item.Price); err != nil {
			return fmt.Errorf("item %d: %w", item.ID, err)
		}
		if err := ValidateItemTags(list, item); err != nil {
			return err
		}
	}

	return nil
}

// ValidateTags checks tag IDs are unique and positive, names unique (case-insensitive) and colours well formed
func ValidateTags(tags []grocer.ListTag) error {
	ids := make(map[int]bool, len(tags))
	names := make(map[string]bool, len(tags))

	for _, tag := range tags {
		if tag.ID <= 0 {
			return fmt.Errorf("tag %q has non-positive ID %d", tag.Name, tag.ID)
		}
		if ids[tag.ID] {
			return fmt.Errorf("duplicate tag ID %d", tag.ID)
		}
		ids[tag.ID] = true

		key := strings.ToLower(strings.TrimSpace(tag.Name))
		if key == "" {
			return fmt.Errorf("tag %d has no name", tag.ID)
		}
		if names[key] {
			return fmt.Errorf("duplicate tag name %q", tag.Name)
		}
		names[key] = true

		if !colourPattern.MatchString(tag.Colour) {
			return fmt.Errorf("tag %d has invalid colour %q", tag.ID, tag.Colour)
		}
	}

	return nil
}

// ValidateItemTags ensures every tag on the item is one of the list's tags
func ValidateItemTags(list *grocer.List, item grocer.ListItem) error {
	for _, tag := range item.Tags {
		index := grocer.IndexByID(list.Tags, tag.ID)
		if index == -1 {
			return fmt.Errorf("item %d references unknown tag %d", item.ID, tag.ID)
		}
		if list.Tags[index].Name != tag.Name {
			return fmt.Errorf("item %d tag %d is named %q on the list but %q on the item", item.ID, tag.ID, list.Tags[index].Name, tag.Name)
		}
	}
	return nil
}

// ValidateLists checks a collection of lists for unique IDs and invite codes
func ValidateLists(lists []*grocer.List) error {
	ids := make(map[int]bool, len(lists))
	codes := make(map[string]int, len(lists))

	for _, list := range lists {
		if err := ValidateList(list); err != nil {
			return err
		}
		if ids[list.ID] {
			return fmt.Errorf("duplicate list ID %d", list.ID)
		}
		ids[list.ID] = true

		if list.InviteCode == "" {
			continue
		}
		if other, ok := codes[list.InviteCode]; ok {
			return fmt.Errorf("lists %d and %d share invite code %q", other, list.ID, list.InviteCode)
		}
		codes[list.InviteCode] = list.ID
	}

	return nil
}
