package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no bucket was configured.
var ErrNotConfigured = errors.New("object storage is not configured")

// Service stores document files in remote object storage.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key, filename string, expires time.Duration) (string, error)
}

// ObjectKey builds the key a document file is stored under:
// {prefix}/documents/{id}/{uuid}-{filename}.
func ObjectKey(prefix string, documentID int64, filename string) string {
	name := fmt.Sprintf("%s-%s", uuid.NewString(), SanitizeFilename(filename))
	key := path.Join("documents", fmt.Sprint(documentID), name)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

// SanitizeFilename keeps the base name and replaces anything outside
// letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	clean = strings.Trim(clean, ".")
	if clean == "" {
		return "file"
	}
	return clean
}
