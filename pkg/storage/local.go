package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/obraseguro/backend/pkg/apperr"
)

// Local stores photos on the local filesystem under dir/checklist, served
// back through the /uploads/ file server.
type Local struct {
	dir      string
	maxBytes int64
}

func NewLocal(dir string, maxBytes int64) *Local {
	return &Local{dir: dir, maxBytes: maxBytes}
}

func (l *Local) Store(_ context.Context, data []byte, contentType string) (string, error) {
	if err := checkPayload(data, contentType, l.maxBytes); err != nil {
		return "", err
	}

	subdir := filepath.Join(l.dir, "checklist")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		return "", apperr.Upstream("failed to create upload directory", err)
	}

	name := uuid.NewString() + extFor(contentType)
	if err := os.WriteFile(filepath.Join(subdir, name), data, 0644); err != nil {
		return "", apperr.Upstream("failed to save file", err)
	}
	return "checklist/" + name, nil
}

func (l *Local) ResolveURL(ref string) string {
	return "/uploads/" + ref
}
