package validation

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxUploadSize is the largest document file accepted.
const DefaultMaxUploadSize int64 = 10 * 1024 * 1024

var allowedUploadTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// CheckUpload sniffs the content of an uploaded file and returns its MIME
// type when it is a PDF or Word document within maxSize bytes.
func CheckUpload(size int64, r io.Reader, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if size <= 0 {
		return "", NewError("file", "File wajib diunggah")
	}
	if size > maxSize {
		return "", NewError("file", "Ukuran file maksimal "+formatSize(maxSize))
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	for _, allowed := range allowedUploadTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", NewError("file", "File harus berformat PDF atau Word")
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d byte", n)
}
