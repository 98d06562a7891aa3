package grocer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemEditor_AddMode(t *testing.T) {
	editor := NewItemEditor(sampleList(), nil)

	assert.Equal(t, EditorModeAdd, editor.Mode())
	assert.Equal(t, "Add New Item", editor.Title())
	assert.Equal(t, "Add", editor.ConfirmLabel())
	assert.False(t, editor.CanDelete())
	assert.Equal(t, 0, editor.ItemID())
	assert.Empty(t, editor.Name)
	assert.Empty(t, editor.Tags())
	assert.False(t, editor.OnSale())
}

func TestNewItemEditor_EditMode(t *testing.T) {
	list := sampleList()
	editor := NewItemEditor(list, &list.Items[0])

	assert.Equal(t, EditorModeEdit, editor.Mode())
	assert.Equal(t, "Edit Item", editor.Title())
	assert.Equal(t, "Save", editor.ConfirmLabel())
	assert.True(t, editor.CanDelete())
	assert.Equal(t, 1, editor.ItemID())
	assert.Equal(t, "Apples", editor.Name)
	assert.Equal(t, "3.49", editor.Price)
	assert.Len(t, editor.Tags(), 2)
	assert.True(t, editor.OnSale())
}

func TestItemEditor_Reset(t *testing.T) {
	list := sampleList()
	editor := NewItemEditor(list, &list.Items[0])

	editor.Name = "Pears"
	editor.Price = "1.00"
	editor.TagInput = "Fruit"
	editor.Reset()

	assert.Empty(t, editor.Name)
	assert.Empty(t, editor.Price)
	assert.Empty(t, editor.AdditionalNotes)
	assert.Empty(t, editor.TagInput)
	assert.Empty(t, editor.Tags())
	assert.False(t, editor.OnSale())
	assert.Equal(t, EditorModeEdit, editor.Mode(), "reset keeps the mode")

	add := NewItemEditor(list, nil)
	add.Name = "Milk"
	_, _, err := add.AddTag("Dairy")
	require.NoError(t, err)
	add.Reset()

	assert.Empty(t, add.Name)
	assert.Empty(t, add.Tags())
}

func TestItemEditor_AddTag(t *testing.T) {
	editor := NewItemEditor(sampleList(), nil)

	// Existing list tag is reused, case-insensitively
	tag, added, err := editor.AddTag(" PRODUCE ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, ListTag{ID: 1, Name: "Produce", Colour: "#4caf50"}, tag)

	// Adding it again is a no-op
	again, added, err := editor.AddTag("produce")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, tag, again)
	assert.Len(t, editor.Tags(), 1)

	// Unknown names become new tags with the next free ID
	dairy, added, err := editor.AddTag("Dairy")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 3, dairy.ID)
	assert.Equal(t, "Dairy", dairy.Name)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, dairy.Colour)

	bakery, _, err := editor.AddTag("Bakery")
	require.NoError(t, err)
	assert.Equal(t, 4, bakery.ID)

	_, _, err = editor.AddTag("   ")
	assert.True(t, IsValidation(err))
}

func TestItemEditor_SubmitTagInput(t *testing.T) {
	editor := NewItemEditor(sampleList(), nil)
	editor.TagInput = "Frozen"

	tag, added, err := editor.SubmitTagInput()
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Frozen", tag.Name)
	assert.Empty(t, editor.TagInput)

	editor.TagInput = "  "
	_, _, err = editor.SubmitTagInput()
	assert.Error(t, err)
	assert.Equal(t, "  ", editor.TagInput)
}

func TestItemEditor_RemoveTag(t *testing.T) {
	list := sampleList()
	editor := NewItemEditor(list, &list.Items[0])

	assert.Error(t, editor.RemoveTag(-1))
	assert.Error(t, editor.RemoveTag(2))

	// Removing the On Sale tag clears the flag
	require.NoError(t, editor.RemoveTag(1))
	assert.False(t, editor.OnSale())
	assert.Equal(t, []ListTag{list.Tags[0]}, editor.Tags())

	// The item being edited is untouched
	assert.Len(t, list.Items[0].Tags, 2)
}

func TestItemEditor_Revert(t *testing.T) {
	list := sampleList()
	editor := NewItemEditor(list, &list.Items[0])

	editor.Name = "Pears"
	editor.Price = "1.00"
	require.NoError(t, editor.RemoveTag(0))
	editor.Revert()

	assert.Equal(t, "Apples", editor.Name)
	assert.Equal(t, "3.49", editor.Price)
	assert.Len(t, editor.Tags(), 2)
	assert.True(t, editor.OnSale())

	add := NewItemEditor(list, nil)
	add.Name = "Milk"
	add.Revert()
	assert.Empty(t, add.Name)
}

func lowerCaseSaleList() *List {
	return &List{
		ID:    1,
		Name:  "Groceries",
		Tags:  []ListTag{{ID: 1, Name: "on sale", Colour: "#000000"}},
		Items: []ListItem{{ID: 1, Name: "Milk", Tags: []ListTag{{ID: 1, Name: "on sale", Colour: "#000000"}}}},
	}
}

func TestItemEditor_OnSaleIgnoresCase(t *testing.T) {
	t.Run("set reuses the list tag", func(t *testing.T) {
		editor := NewItemEditor(lowerCaseSaleList(), nil)
		editor.Name = "Bread"
		editor.SetOnSale(true)

		item, newTags, err := editor.Build(DefaultServiceConfig)
		require.NoError(t, err)
		assert.True(t, item.IsOnSale())
		assert.Empty(t, newTags)
	})

	t.Run("clear removes the list tag", func(t *testing.T) {
		list := lowerCaseSaleList()
		editor := NewItemEditor(list, &list.Items[0])
		assert.True(t, editor.OnSale(), "edit mode loads the checkbox")

		editor.SetOnSale(false)
		assert.False(t, editor.OnSale())
		assert.Empty(t, editor.Tags())
	})

	t.Run("removing the tag clears the checkbox", func(t *testing.T) {
		list := lowerCaseSaleList()
		editor := NewItemEditor(list, &list.Items[0])

		require.NoError(t, editor.RemoveTag(0))
		assert.False(t, editor.OnSale())
	})

	t.Run("item reports on sale", func(t *testing.T) {
		item := ListItem{Tags: []ListTag{{ID: 4, Name: " ON SALE "}}}
		assert.True(t, item.IsOnSale())
	})
}

func TestItemEditor_SetOnSale(t *testing.T) {
	editor := NewItemEditor(sampleList(), nil)

	editor.SetOnSale(true)
	assert.True(t, editor.OnSale())
	require.Len(t, editor.Tags(), 1)
	assert.Equal(t, 2, editor.Tags()[0].ID, "reuses the list's On Sale tag")

	editor.SetOnSale(true)
	assert.Len(t, editor.Tags(), 1)

	editor.SetOnSale(false)
	assert.False(t, editor.OnSale())
	assert.Empty(t, editor.Tags())

	_, _, err := editor.AddTag(OnSaleTagName)
	require.NoError(t, err)
	assert.True(t, editor.OnSale())
}

func TestItemEditor_Build(t *testing.T) {
	editor := NewItemEditor(sampleList(), nil)
	editor.Name = "  Milk "
	editor.AdditionalNotes = " 2L "
	editor.Price = "$2.99"
	_, _, err := editor.AddTag("Produce")
	require.NoError(t, err)
	_, _, err = editor.AddTag("Dairy")
	require.NoError(t, err)

	item, newTags, err := editor.Build(DefaultServiceConfig)
	require.NoError(t, err)

	assert.Equal(t, 0, item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "2L", item.AdditionalNotes)
	assert.Equal(t, "2.99", item.Price)
	assert.Len(t, item.Tags, 2)
	require.Len(t, newTags, 1)
	assert.Equal(t, "Dairy", newTags[0].Name)
}

func TestItemEditor_BuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ItemEditor)
		field  string
	}{
		{"empty name", func(e *ItemEditor) { e.Name = "  " }, "name"},
		{"long name", func(e *ItemEditor) { e.Name = strings.Repeat("a", 101) }, "name"},
		{"long notes", func(e *ItemEditor) { e.AdditionalNotes = strings.Repeat("n", 1001) }, "additionalNotes"},
		{"bad price", func(e *ItemEditor) { e.Price = "three" }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor := NewItemEditor(sampleList(), nil)
			editor.Name = "Milk"
			tt.modify(editor)

			_, _, err := editor.Build(DefaultServiceConfig)
			require.Error(t, err)

			var ge *GrocerError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, ErrCodeValidation, ge.Code)
			assert.Equal(t, tt.field, ge.Field)
		})
	}
}

func TestItemEditor_BuildEditKeepsID(t *testing.T) {
	list := sampleList()
	editor := NewItemEditor(list, &list.Items[1])
	editor.Name = "Rye Bread"

	item, newTags, err := editor.Build(DefaultServiceConfig)
	require.NoError(t, err)
	assert.Equal(t, 2, item.ID)
	assert.Equal(t, "Rye Bread", item.Name)
	assert.Empty(t, newTags)
}

func TestNormalizePrice(t *testing.T) {
	valid := map[string]string{
		"":        "",
		"$":       "",
		"  ":      "",
		"3":       "3",
		"3.5":     "3.5",
		"3.49":    "3.49",
		"$10.00":  "10.00",
		" $0.99 ": "0.99",
	}
	for input, want := range valid {
		got, err := NormalizePrice(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"abc", "-1", "1.234", "1,50", "$-2", ".5", "1."} {
		_, err := NormalizePrice(input)
		assert.True(t, IsValidation(err), input)
	}
}
