package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", models.MediaTypeImage},
		{"image/png", models.MediaTypeImage},
		{"IMAGE/WEBP", models.MediaTypeImage},
		{"image/jpeg; charset=binary", models.MediaTypeImage},
		{"video/mp4", models.MediaTypeVideo},
		{"video/quicktime", models.MediaTypeVideo},
		{"image/gif", ""},
		{"application/pdf", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaTypeFor(tt.contentType), tt.contentType)
	}

	assert.True(t, IsImageType("image/png"))
	assert.False(t, IsImageType("video/mp4"))
}

func TestStoreRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)
	assert.Equal(t, root, store.Root())

	path := filepath.Join(root, "stored.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	store.Remove("stored.jpg")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Missing files and blank names are silent no-ops.
	assert.NotPanics(t, func() { store.Remove("stored.jpg") })
	assert.NotPanics(t, func() { store.Remove("") })
}

func TestStoreRemoveIgnoresPathTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "precious.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	// Only the base name is honored, so the outside file survives.
	store.Remove("../" + filepath.Base(filepath.Dir(outside)) + "/precious.txt")
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestRemoveAll(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)

	names := []string{"a.jpg", "b.mp4"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	store.RemoveAll(names)
	for _, name := range names {
		_, err := os.Stat(filepath.Join(root, name))
		assert.True(t, os.IsNotExist(err), name)
	}
}

func TestGenerateFilenameKeepsExtension(t *testing.T) {
	name := generateFilename("Holiday Photo.JPG")
	assert.True(t, filepath.Ext(name) == ".jpg")
	assert.NotEqual(t, generateFilename("a.png"), generateFilename("a.png"))

	// Absurdly long extensions are dropped rather than stored.
	assert.Equal(t, "", filepath.Ext(generateFilename("file."+strings.Repeat("x", 20))))
}
