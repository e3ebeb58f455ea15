package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/lucsky/cuid"
)

// Uploader persists an uploaded file and returns the URL it is served from.
// Delete removes a saved object by the name it was saved under; a missing
// object is not an error.
type Uploader interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

// ObjectName derives a collision-free object name that keeps the original
// extension, e.g. "photo-ckq...x.jpg".
func ObjectName(field, original string) string {
	ext := strings.ToLower(path.Ext(original))
	if len(ext) > 8 {
		ext = ""
	}
	return field + "-" + cuid.New() + ext
}
