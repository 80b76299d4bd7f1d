package photo

import (
	"fmt"
	"strings"
)

// MaxUploadBytes is the ceiling on a source image before compression.
const MaxUploadBytes = 10 * 1024 * 1024

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Validate checks the declared media type and size of a candidate image.
func Validate(f File) error {
	if !acceptedTypes[normalizeType(f.Type())] {
		return &ValidationError{Reason: "Invalid file type. Please upload a JPEG, PNG, or WebP image."}
	}

	if f.Size() > MaxUploadBytes {
		return &ValidationError{Reason: fmt.Sprintf("File too large. Maximum size is %dMB.", MaxUploadBytes/(1024*1024))}
	}

	return nil
}

// AcceptedType reports whether mediaType is one of the accepted image types.
func AcceptedType(mediaType string) bool {
	return acceptedTypes[normalizeType(mediaType)]
}

func normalizeType(t string) string {
	t, _, _ = strings.Cut(t, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
