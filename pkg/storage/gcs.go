package storage

import (
	"context"
	"fmt"

	gcstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/obraseguro/backend/pkg/apperr"
)

// GCS stores photos in a Google Cloud Storage bucket.
type GCS struct {
	client   *gcstorage.Client
	bucket   string
	maxBytes int64
}

func NewGCS(ctx context.Context, bucket string, maxBytes int64) (*GCS, error) {
	if bucket == "" {
		return nil, apperr.Upstream("GCS_BUCKET not configured", nil)
	}
	client, err := gcstorage.NewClient(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to create GCS client", err)
	}
	return &GCS{client: client, bucket: bucket, maxBytes: maxBytes}, nil
}

func (g *GCS) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := checkPayload(data, contentType, g.maxBytes); err != nil {
		return "", err
	}

	name := "checklist/" + uuid.NewString() + extFor(contentType)
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", apperr.Upstream("failed to upload to GCS", err)
	}
	if err := w.Close(); err != nil {
		return "", apperr.Upstream("failed to finalize GCS upload", err)
	}
	return name, nil
}

func (g *GCS) ResolveURL(ref string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, ref)
}
