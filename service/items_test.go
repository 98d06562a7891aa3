package service

import (
	"context"
	"testing"

	"github.com/sicko7947/grocer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListWithItems(t *testing.T) (*Service, int) {
	t.Helper()
	svc := newTestService(t)
	ctx := context.Background()

	list, err := svc.CreateList(ctx, "Groceries")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, list.ID, ItemInput{Name: "Apples", Price: "3.49", Tags: []string{"Produce"}})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, list.ID, ItemInput{Name: "Milk", Price: "$2.99", Tags: []string{"Dairy"}, OnSale: true})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, list.ID, ItemInput{Name: "Bread"})
	require.NoError(t, err)

	return svc, list.ID
}

func TestAddItem(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)

	require.Len(t, list.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list.Items[0].ID, list.Items[1].ID, list.Items[2].ID})

	milk := list.Items[1]
	assert.Equal(t, "2.99", milk.Price)
	assert.True(t, milk.IsOnSale())

	// New tags were appended to the list in order
	require.Len(t, list.Tags, 3)
	assert.Equal(t, "Produce", list.Tags[0].Name)
	assert.Equal(t, "Dairy", list.Tags[1].Name)
	assert.Equal(t, grocer.OnSaleTagName, list.Tags[2].Name)
	assert.Equal(t, []int{1, 2, 3}, []int{list.Tags[0].ID, list.Tags[1].ID, list.Tags[2].ID})

	// Item tag copies match the list tags
	assert.Equal(t, list.Tags[1], milk.Tags[0])
	assert.Equal(t, list.Tags[2], milk.Tags[1])
}

func TestAddItem_ReusesTagsCaseInsensitively(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, listID, ItemInput{Name: "Pears", Tags: []string{"produce", "PRODUCE", "Fruit"}})
	require.NoError(t, err)

	require.Len(t, item.Tags, 2)
	assert.Equal(t, 1, item.Tags[0].ID)
	assert.Equal(t, "Produce", item.Tags[0].Name)
	assert.Equal(t, 4, item.Tags[1].ID)

	tags, err := svc.Tags(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, tags, 4)
}

func TestAddItem_Validation(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, listID, ItemInput{Name: ""})
	assert.True(t, grocer.IsValidation(err))

	_, err = svc.AddItem(ctx, listID, ItemInput{Name: "Cheese", Price: "a lot"})
	assert.True(t, grocer.IsValidation(err))

	_, err = svc.AddItem(ctx, listID, ItemInput{Name: "Cheese", Tags: []string{" "}})
	assert.True(t, grocer.IsValidation(err))

	_, err = svc.AddItem(ctx, 99, ItemInput{Name: "Cheese"})
	assert.True(t, grocer.IsNotFound(err))

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, list.Items, 3, "failed adds leave the list untouched")
	assert.Len(t, list.Tags, 3)
}

func TestUpdateItem(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	item, err := svc.UpdateItem(ctx, listID, 2, ItemInput{Name: "Oat milk", AdditionalNotes: "barista", Tags: []string{"Dairy", "Vegan"}})
	require.NoError(t, err)

	assert.Equal(t, 2, item.ID)
	assert.Equal(t, "Oat milk", item.Name)
	assert.Equal(t, "barista", item.AdditionalNotes)
	assert.Empty(t, item.Price)
	assert.False(t, item.IsOnSale(), "on sale is replaced like every other field")
	require.Len(t, item.Tags, 2)
	assert.Equal(t, "Vegan", item.Tags[1].Name)

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, item, list.Items[1])
	assert.Len(t, list.Tags, 4, "unused tags stay on the list")

	_, err = svc.UpdateItem(ctx, listID, 42, ItemInput{Name: "Ghost"})
	assert.True(t, grocer.IsNotFound(err))

	_, err = svc.UpdateItem(ctx, listID, 0, ItemInput{Name: "Ghost"})
	assert.True(t, grocer.IsNotFound(err))
}

func TestOpenEditorAndSaveItem(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	editor, err := svc.OpenEditor(ctx, listID, 1)
	require.NoError(t, err)
	assert.Equal(t, grocer.EditorModeEdit, editor.Mode())
	assert.Equal(t, "Apples", editor.Name)

	editor.Price = "2.50"
	editor.TagInput = "Fruit"
	_, _, err = editor.SubmitTagInput()
	require.NoError(t, err)
	editor.SetOnSale(true)

	saved, err := svc.SaveItem(ctx, listID, editor)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)
	assert.Equal(t, "2.50", saved.Price)
	assert.True(t, saved.IsOnSale())
	assert.Len(t, saved.Tags, 3)

	add, err := svc.OpenEditor(ctx, listID, 0)
	require.NoError(t, err)
	assert.Equal(t, grocer.EditorModeAdd, add.Mode())
	add.Name = "Eggs"
	created, err := svc.SaveItem(ctx, listID, add)
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	_, err = svc.OpenEditor(ctx, listID, 77)
	assert.True(t, grocer.IsNotFound(err))
}

func TestSaveItem_StaleEditor(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	editor, err := svc.OpenEditor(ctx, listID, 3)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, listID, 3))

	_, err = svc.SaveItem(ctx, listID, editor)
	assert.True(t, grocer.IsNotFound(err))
}

func TestSaveItem_TagCreatedConcurrently(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	// Two editors opened before either tag exists on the list
	first, err := svc.OpenEditor(ctx, listID, 0)
	require.NoError(t, err)
	second, err := svc.OpenEditor(ctx, listID, 0)
	require.NoError(t, err)

	first.Name = "Peas"
	_, _, err = first.AddTag("Frozen")
	require.NoError(t, err)
	second.Name = "Chips"
	_, _, err = second.AddTag("frozen")
	require.NoError(t, err)

	_, err = svc.SaveItem(ctx, listID, first)
	require.NoError(t, err)
	chips, err := svc.SaveItem(ctx, listID, second)
	require.NoError(t, err)

	tags, err := svc.Tags(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, tags, 4, "the second save reuses the tag created by the first")
	assert.Equal(t, "Frozen", chips.Tags[0].Name)
	assert.Equal(t, tags[3].ID, chips.Tags[0].ID)
}

func TestDeleteItem(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteItem(ctx, listID, 2))

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Apples", list.Items[0].Name)
	assert.Equal(t, "Bread", list.Items[1].Name)
	assert.Len(t, list.Tags, 3, "tags outlive their items")

	assert.True(t, grocer.IsNotFound(svc.DeleteItem(ctx, listID, 2)))

	// IDs are not reused while a higher one exists
	item, err := svc.AddItem(ctx, listID, ItemInput{Name: "Eggs"})
	require.NoError(t, err)
	assert.Equal(t, 4, item.ID)
}

func TestItems_TagFilters(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	all, err := svc.Items(ctx, listID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	produce, err := svc.Items(ctx, listID, []int{1})
	require.NoError(t, err)
	require.Len(t, produce, 1)
	assert.Equal(t, "Apples", produce[0].Name)

	either, err := svc.Items(ctx, listID, []int{1, 3, 1})
	require.NoError(t, err)
	assert.Len(t, either, 2, "duplicate IDs do not cancel each other")

	_, err = svc.Items(ctx, listID, []int{42})
	assert.True(t, grocer.IsNotFound(err))

	_, err = svc.Items(ctx, 99, nil)
	assert.True(t, grocer.IsNotFound(err))
}

func TestRemoveTag(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	// Remove On Sale
	require.NoError(t, svc.RemoveTag(ctx, listID, 3))

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, list.Tags, 2)
	assert.False(t, list.Items[1].IsOnSale())
	assert.Len(t, list.Items[1].Tags, 1)

	assert.True(t, grocer.IsNotFound(svc.RemoveTag(ctx, listID, 3)))
}

func TestRecolourTag(t *testing.T) {
	svc, listID := newListWithItems(t)
	ctx := context.Background()

	tag, err := svc.RecolourTag(ctx, listID, 2, " #ABCDEF ")
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", tag.Colour)
	assert.Equal(t, "Dairy", tag.Name)

	list, err := svc.GetList(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", list.Tags[1].Colour)
	assert.Equal(t, "#abcdef", list.Items[1].Tags[0].Colour)

	_, err = svc.RecolourTag(ctx, listID, 2, "blue")
	assert.True(t, grocer.IsValidation(err))

	_, err = svc.RecolourTag(ctx, listID, 9, "#000000")
	assert.True(t, grocer.IsNotFound(err))
}
