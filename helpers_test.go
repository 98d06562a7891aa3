package grocer

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToPtr(t *testing.T) {
	original := 10
	ptr := ToPtr(original)
	original = 20

	assert.Equal(t, 10, *ptr)
	assert.Equal(t, "test", *ToPtr("test"))
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		items []ListItem
		want  int
	}{
		{"empty collection", nil, 1},
		{"single element", []ListItem{{ID: 1}}, 2},
		{"unordered ids", []ListItem{{ID: 4}, {ID: 9}, {ID: 2}}, 10},
		{"gaps are not reused", []ListItem{{ID: 1}, {ID: 5}}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.items))
		})
	}
}

func TestIndexByID(t *testing.T) {
	tags := []ListTag{{ID: 3}, {ID: 7}, {ID: 1}}

	assert.Equal(t, 1, IndexByID(tags, 7))
	assert.Equal(t, 2, IndexByID(tags, 1))
	assert.Equal(t, -1, IndexByID(tags, 4))
	assert.Equal(t, -1, IndexByID([]ListTag{}, 1))
}

func TestNewItems(t *testing.T) {
	reference := []ListTag{{ID: 1, Name: "Produce"}, {ID: 2, Name: "Dairy"}}
	collection := []ListTag{{ID: 3, Name: "Bakery"}, {ID: 1, Name: "Produce"}, {ID: 4, Name: "Frozen"}}

	added := NewItems(reference, collection)
	assert.Equal(t, []ListTag{{ID: 3, Name: "Bakery"}, {ID: 4, Name: "Frozen"}}, added)

	assert.Empty(t, NewItems(reference, reference))
	assert.NotNil(t, NewItems(reference, nil))
}

func TestRandomColour(t *testing.T) {
	pattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, RandomColour())
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		strategy BackoffStrategy
		attempt  int
		want     time.Duration
	}{
		{BackoffExponential, 0, 0},
		{BackoffExponential, 1, 100 * time.Millisecond},
		{BackoffExponential, 2, 200 * time.Millisecond},
		{BackoffExponential, 4, 800 * time.Millisecond},
		{BackoffLinear, 1, 100 * time.Millisecond},
		{BackoffLinear, 3, 300 * time.Millisecond},
		{BackoffNone, 5, 0},
		{"unknown", 2, 200 * time.Millisecond},
		{BackoffLinear, -1, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateBackoff(base, tt.attempt, tt.strategy))
		})
	}
}
