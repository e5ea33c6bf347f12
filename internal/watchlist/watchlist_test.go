package watchlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{ sets int }

func (b *brokenKV) Get(string) (string, bool, error) { return "", false, errors.New("storage disabled") }
func (b *brokenKV) Set(string, string) error         { b.sets++; return errors.New("storage disabled") }
func (b *brokenKV) Clear(string) error               { return errors.New("storage disabled") }

func TestToggle_AddThenRemove(t *testing.T) {
	w := New(NewMemoryKV(), "")

	assert.Equal(t, Added, w.Toggle("foo"))
	assert.Equal(t, []string{"foo"}, w.List())
	assert.True(t, w.Has("foo"))

	assert.Equal(t, Removed, w.Toggle("foo"))
	assert.Empty(t, w.List())
	assert.False(t, w.Has("foo"))
}

func TestAdd_NoDuplicates(t *testing.T) {
	kv := NewMemoryKV()
	w := New(kv, "")
	assert.Equal(t, Added, w.Add("foo"))
	assert.Equal(t, Unchanged, w.Add("foo"))
	assert.Equal(t, Unchanged, w.Add("  "))
	assert.Equal(t, Added, w.Add("bar"))

	raw, ok, err := kv.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["foo","bar"]`, raw)
}

func TestRemove_Absent(t *testing.T) {
	w := New(NewMemoryKV(), "")
	assert.Equal(t, Unchanged, w.Remove("foo"))
	assert.Equal(t, Unchanged, w.Toggle(""))
}

func TestList_CorruptOrDuplicateData(t *testing.T) {
	kv := NewMemoryKV()
	w := New(kv, "k")

	kv.Set("k", "{not json")
	assert.Empty(t, w.List())

	kv.Set("k", `{"foo": true}`)
	assert.Empty(t, w.List())

	kv.Set("k", `["a", "b", "a", 3, "", "c"]`)
	assert.Equal(t, []string{"a", "b", "c"}, w.List())

	// Writing after a corrupt read starts from empty.
	kv.Set("k", "garbage")
	assert.Equal(t, Added, w.Toggle("x"))
	assert.Equal(t, []string{"x"}, w.List())
}

func TestStorageFailure_NeverPropagates(t *testing.T) {
	kv := &brokenKV{}
	w := New(kv, "")

	assert.Empty(t, w.List())
	assert.Equal(t, Added, w.Toggle("foo"))
	assert.Equal(t, 1, kv.sets)
	assert.False(t, w.Has("foo"))
	w.Clear()
}

func TestClear(t *testing.T) {
	w := New(NewMemoryKV(), "")
	w.Add("a")
	w.Clear()
	assert.Empty(t, w.List())
}

func TestLastWriterWins(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "watchlist.json"))
	tabA := New(kv, "")
	tabB := New(kv, "")

	tabA.Add("a")
	tabB.Add("b")
	assert.Equal(t, []string{"a", "b"}, tabA.List())
}

func TestSet(t *testing.T) {
	w := New(NewMemoryKV(), "")
	w.Add("a")
	w.Add("b")
	assert.Equal(t, map[string]bool{"a": true, "b": true}, w.Set())
}

// --- backends ---

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", `["a"]`))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, v)

	require.NoError(t, kv.Set("k", `["b"]`))
	v, _, _ = kv.Get("k")
	assert.Equal(t, `["b"]`, v)

	require.NoError(t, kv.Set("other", "x"))
	require.NoError(t, kv.Clear("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	v, _, _ = kv.Get("other")
	assert.Equal(t, "x", v)

	require.NoError(t, kv.Clear("never-set"))

	w := New(kv, "")
	assert.Equal(t, Added, w.Toggle("foo"))
	assert.Equal(t, Removed, w.Toggle("foo"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watchlist.json")
	exerciseKV(t, NewFileKV(path))
	assert.FileExists(t, path)
	assert.NoFileExists(t, path+".tmp")
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))
	kv := NewFileKV(path)

	_, _, err := kv.Get("k")
	assert.Error(t, err)

	w := New(kv, "k")
	assert.Empty(t, w.List())
	assert.Equal(t, Added, w.Add("a"))
	assert.Equal(t, []string{"a"}, w.List())
}

func TestSQLiteKV(t *testing.T) {
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "db", "watchlist.db"))
	require.NoError(t, err)
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKV(client)
	defer kv.Close()

	exerciseKV(t, kv)

	New(kv, "").Add("foo")
	got, err := mr.Get(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `["foo"]`, got)
}

func TestRedisKV_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	defer kv.Close()
	mr.Close()

	w := New(kv, "")
	assert.Empty(t, w.List())
	assert.Equal(t, Added, w.Toggle("foo"))
}
