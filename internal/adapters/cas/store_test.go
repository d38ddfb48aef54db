package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plink/internal/adapters/cas"
	"go.trai.ch/plink/internal/core/domain"
)

func record(pkg string, target domain.Triple) domain.BuildRecord {
	return domain.BuildRecord{
		Package: pkg,
		Host:    domain.TripleLinux,
		Target:  target,
		Path:    "./target/debug/lib" + pkg + ".so",
		Digest:  0xdeadbeef,
		BuiltAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_PutAndGet(t *testing.T) {
	store := cas.NewStore(filepath.Join(t.TempDir(), "store"))
	rec := record("plugin", domain.TripleLinux)

	require.NoError(t, store.Put(rec))

	got, err := store.Get(rec.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestStore_GetMissing(t *testing.T) {
	store := cas.NewStore(t.TempDir())

	got, err := store.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Overwrite(t *testing.T) {
	store := cas.NewStore(t.TempDir())
	rec := record("header", domain.TripleLinux)
	require.NoError(t, store.Put(rec))

	rec.Digest = 42
	require.NoError(t, store.Put(rec))

	got, err := store.Get(rec.Key())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Digest)

	all, err := store.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	store := cas.NewStore(dir)

	empty, err := cas.NewStore(filepath.Join(dir, "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Put(record("plugin", domain.TripleWindows)))
	require.NoError(t, store.Put(record("header", domain.TripleLinux)))
	require.NoError(t, store.Put(record("plugin", domain.TripleLinux)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), domain.FilePerm))

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "header", all[0].Package)
	assert.Equal(t, "plugin", all[1].Package)
	assert.Equal(t, domain.TripleWindows, all[1].Target)
	assert.Equal(t, "plugin", all[2].Package)
	assert.Equal(t, domain.TripleLinux, all[2].Target)
}

func TestStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store := cas.NewStore(dir)
	rec := record("plugin", domain.TripleLinux)
	require.NoError(t, store.Put(rec))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{"), domain.FilePerm))

	_, err = store.Get(rec.Key())
	assert.ErrorIs(t, err, domain.ErrStoreUnmarshalFailed)

	_, err = store.List()
	assert.ErrorIs(t, err, domain.ErrStoreUnmarshalFailed)
}
