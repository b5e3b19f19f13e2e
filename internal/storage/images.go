// Package storage persists uploaded image artifacts on the local filesystem.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	// Register decoders so DecodeConfig recognizes the formats clients upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"feedline/internal/middleware"
	"feedline/internal/models"
	"feedline/internal/observability"

	"github.com/google/uuid"
)

// URLPrefix is the public route prefix artifacts are served under.
const URLPrefix = "/images"

const maxImageBytes = 10 << 20 // 10MB

// ImageStore saves and removes image artifacts under a single directory.
// Removal is best-effort: failures are logged and counted, never returned.
type ImageStore struct {
	dir    string
	logger *slog.Logger
}

// NewImageStore creates the upload directory if needed and returns a store for it.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &ImageStore{dir: dir, logger: middleware.Logger}, nil
}

// Dir returns the directory artifacts are stored in, for static serving.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk under a fresh name and returns its
// public reference (e.g. "/images/3f1a….png"). The payload must decode as an
// image in a supported format.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxImageBytes {
		return "", models.NewValidationError("Image exceeds the maximum allowed size")
	}

	src, err := fh.Open()
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	if int64(len(content)) > maxImageBytes {
		return "", models.NewValidationError("Image exceeds the maximum allowed size")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Uploaded file is not a supported image")
	}

	name := uuid.New().String() + "." + format
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return path.Join(URLPrefix, name), nil
}

// Remove deletes the artifact behind a reference previously returned by Save.
// Failures are logged and counted, never returned.
func (s *ImageStore) Remove(ref string) {
	name := strings.TrimPrefix(ref, URLPrefix+"/")
	// Reject anything that is not a bare filename to prevent path escapes.
	if name == "" || name != filepath.Base(name) {
		s.logger.Warn("refusing to remove suspicious image reference", slog.String("ref", ref))
		observability.ImageArtifactRemovals.WithLabelValues("rejected").Inc()
		return
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		s.logger.Warn("failed to remove image artifact",
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
		observability.ImageArtifactRemovals.WithLabelValues("error").Inc()
		return
	}
	observability.ImageArtifactRemovals.WithLabelValues("removed").Inc()
}
