// Package storage implements the photo store capability: store bytes, get a
// reference; resolve a reference, get a retrievable URL. Non-image content
// types and oversize payloads are rejected before any backend is touched.
package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/obraseguro/backend/pkg/apperr"
)

const defaultMaxUploadMB = 10

type Store interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	ResolveURL(ref string) string
}

// FromEnv picks the backend the way production does: GCS when running on
// Google infrastructure or explicitly requested, local disk otherwise.
func FromEnv(ctx context.Context) (Store, error) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		return NewGCS(ctx, os.Getenv("GCS_BUCKET"), maxUploadBytes())
	}

	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return NewLocal(dir, maxUploadBytes()), nil
}

func maxUploadBytes() int64 {
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if mb, err := strconv.ParseInt(v, 10, 64); err == nil && mb > 0 {
			return mb << 20
		}
	}
	return defaultMaxUploadMB << 20
}

func checkPayload(data []byte, contentType string, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperr.Validation("file must be an image")
	}
	if int64(len(data)) > maxBytes {
		return apperr.Validation(fmt.Sprintf("file too large, max %dMB", maxBytes>>20))
	}
	return nil
}

// extFor maps a declared image content type to a filename extension.
func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	sub := strings.TrimPrefix(contentType, "image/")
	if sub == "" || strings.ContainsAny(sub, "/\\.") {
		return ".img"
	}
	return "." + sub
}
