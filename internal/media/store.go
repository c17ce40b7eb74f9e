// Package media stores uploaded post, story, and avatar files on the local
// filesystem, keyed by generated filename.
package media

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Upload limits enforced by the handlers.
const (
	MaxPostMediaFiles = 10
	MaxPostBodyBytes  = 20 * 1024 * 1024
	MaxAvatarBytes    = 5 * 1024 * 1024
)

// postMediaTypes maps every accepted upload MIME type to its stored media type.
var postMediaTypes = map[string]string{
	"image/jpeg":      models.MediaTypeImage,
	"image/jpg":       models.MediaTypeImage,
	"image/png":       models.MediaTypeImage,
	"image/webp":      models.MediaTypeImage,
	"video/mp4":       models.MediaTypeVideo,
	"video/webm":      models.MediaTypeVideo,
	"video/quicktime": models.MediaTypeVideo,
}

// MediaTypeFor returns the stored media type ("image" or "video") for an
// upload content type, or "" when the type is not allowed.
func MediaTypeFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return postMediaTypes[ct]
}

// IsImageType reports whether the content type is an accepted image type.
func IsImageType(contentType string) bool {
	return MediaTypeFor(contentType) == models.MediaTypeImage
}

// Store writes and removes uploaded files under a root directory.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a Store.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %q: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory files are stored under.
func (s *Store) Root() string {
	return s.root
}

// Save persists an uploaded file under a generated name and returns the name.
func (s *Store) Save(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	name := generateFilename(file.Filename)
	if err := c.SaveFile(file, filepath.Join(s.root, name)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file. Removal is best-effort: failures are logged
// and counted, never returned, so a crash between the row delete and the
// file delete at worst leaves an orphaned file.
func (s *Store) Remove(filename string) {
	if filename == "" {
		return
	}
	// Stored names are generated, but never follow a client-supplied path.
	path := filepath.Join(s.root, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		observability.MediaCleanupFailures.Inc()
		middleware.Logger.Warn("media cleanup failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	}
}

// RemoveAll removes a batch of stored files, best-effort per file.
func (s *Store) RemoveAll(filenames []string) {
	for _, f := range filenames {
		s.Remove(f)
	}
}

func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 {
		ext = ""
	}
	return uuid.New().String() + ext
}
