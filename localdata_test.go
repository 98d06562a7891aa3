package grocer_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
	"github.com/sicko7947/grocer/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV fails every operation
type failingKV struct {
	err error
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(ctx context.Context, key string, value []byte) error { return f.err }
func (f failingKV) Delete(ctx context.Context, key string) error { return f.err }

func TestLocalData_StoreAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	data := grocer.NewLocalData(kv, zerolog.Nop())

	lists := []grocer.List{{ID: 1, Name: "Groceries", Tags: []grocer.ListTag{}, Items: []grocer.ListItem{}, IsOwner: true}}
	require.NoError(t, grocer.StoreTyped(data, ctx, "lists", lists))

	raw, err := kv.Get(ctx, "lists")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Groceries","tags":[],"items":[],"isOwner":true,"inviteCode":""}]`, string(raw))

	loaded, found, err := grocer.LoadTyped[[]grocer.List](data, ctx, "lists")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, lists, loaded)
}

func TestLocalData_MissingKey(t *testing.T) {
	data := grocer.NewLocalData(store.NewMemoryKV(), zerolog.Nop())

	loaded, found, err := grocer.LoadTyped[[]grocer.List](data, context.Background(), "lists")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, loaded)
}

func TestLocalData_ReadsExternalWrites(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "greeting", []byte(`"hello"`)))

	data := grocer.NewLocalData(kv, zerolog.Nop())
	value, found, err := grocer.LoadTyped[string](data, ctx, "greeting")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", value)
}

func TestLocalData_Remove(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	data := grocer.NewLocalData(kv, zerolog.Nop())

	require.NoError(t, data.Store(ctx, "key", 42))
	require.NoError(t, data.Remove(ctx, "key"))

	_, found, err := grocer.LoadTyped[int](data, ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error
	assert.NoError(t, data.Remove(ctx, "key"))
}

func TestLocalData_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "lists", []byte(`{not json`)))

	var buf bytes.Buffer
	data := grocer.NewLocalData(kv, zerolog.New(&buf))

	_, found, err := grocer.LoadTyped[[]grocer.List](data, ctx, "lists")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, buf.String(), grocer.EventPersistenceError)
	assert.Contains(t, buf.String(), `"operation":"unmarshal"`)
}

func TestLocalData_BackendErrorsAreReturnedAndLogged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	var buf bytes.Buffer
	data := grocer.NewLocalData(failingKV{err: boom}, zerolog.New(&buf))

	err := data.Store(ctx, "lists", []int{1})
	assert.ErrorIs(t, err, boom)

	_, _, err = grocer.LoadTyped[[]int](data, ctx, "lists")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, data.Remove(ctx, "lists"), boom)

	logged := buf.String()
	assert.Contains(t, logged, `"operation":"set"`)
	assert.Contains(t, logged, `"operation":"get"`)
	assert.Contains(t, logged, `"operation":"delete"`)
}

func TestLocalData_MarshalError(t *testing.T) {
	data := grocer.NewLocalData(store.NewMemoryKV(), zerolog.Nop())

	err := data.Store(context.Background(), "bad", make(chan int))
	assert.Error(t, err)
}

func TestLocalData_LoadReadsBackendEveryTime(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	data := grocer.NewLocalData(kv, zerolog.Nop())

	require.NoError(t, grocer.StoreTyped(data, ctx, "count", 1))
	require.NoError(t, kv.Set(ctx, "count", []byte(`2`)))

	count, found, err := grocer.LoadTyped[int](data, ctx, "count")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, count)

	require.NoError(t, kv.Delete(ctx, "count"))
	_, found, err = grocer.LoadTyped[int](data, ctx, "count")
	require.NoError(t, err)
	assert.False(t, found)
}
