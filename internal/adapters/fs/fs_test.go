package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/plink/internal/core/domain"
)

func mustCreateFile(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(name), domain.PrivateFilePerm))
	return path
}

func mustSetTime(t *testing.T, path string, ts time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, ts, ts))
}
