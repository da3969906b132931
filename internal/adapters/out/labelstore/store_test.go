package labelstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"fulfillment/internal/adapters/out/labelstore"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_WritesArtifactUnderBaseDir(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "labels")

	store, err := labelstore.NewFileStore(baseDir)
	require.NoError(t, err)

	artifact := []byte("%PDF-1.4 label bytes")
	path, err := store.Store("BB-1001", artifact)
	require.NoError(t, err)

	assert.Equal(t, baseDir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "BB-1001_")
	assert.Equal(t, ".pdf", filepath.Ext(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, artifact, written)
}

func Test_Store_MissingInputs_ReturnsRequiredError(t *testing.T) {
	store, err := labelstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Store("", []byte("artifact"))
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = store.Store("BB-1001", nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func Test_NewFileStore_EmptyBaseDir_ReturnsRequiredError(t *testing.T) {
	_, err := labelstore.NewFileStore("")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
