package builder

// ItemOption is a functional option for configuring items
type ItemOption func(*itemFields)

type itemFields struct {
	price  string
	notes  string
	tags   []string
	onSale bool
}

// WithPrice sets the item price
func WithPrice(price string) ItemOption {
	return func(s *itemFields) {
		s.price = price
	}
}

// WithNotes sets the additional notes
func WithNotes(notes string) ItemOption {
	return func(s *itemFields) {
		s.notes = notes
	}
}

// WithTags attaches tags by name, creating list tags as needed
func WithTags(names ...string) ItemOption {
	return func(s *itemFields) {
		s.tags = append(s.tags, names...)
	}
}

// OnSale attaches the On Sale tag
func OnSale() ItemOption {
	return func(s *itemFields) {
		s.onSale = true
	}
}
