package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Errors returned by DecodeBase64Image. Controllers map these to
// validation failures rather than server errors.
var (
	ErrInvalidImageType = errors.New("invalid image type")
	ErrDecodeFailed     = errors.New("failed to decode base64 image")
)

var dataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,`)

// allowedExtensions is the image extension allow-list.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// DefaultExtension is used when a payload carries no data-URI prefix.
const DefaultExtension = "png"

// DecodeBase64Image decodes a base64 image payload. A data-URI prefix
// declares the extension; a bare payload gets DefaultExtension. Unknown
// extensions are rejected, not coerced.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	ext := DefaultExtension
	data := payload

	if m := dataURIPattern.FindStringSubmatch(payload); m != nil {
		ext = strings.ToLower(m[1])
		data = payload[strings.Index(payload, ",")+1:]
	}

	if !allowedExtensions[ext] {
		return nil, "", fmt.Errorf("%w %q, allowed: jpg, jpeg, png, gif, webp", ErrInvalidImageType, ext)
	}

	// Repair '+' characters mangled into spaces by URL transmission.
	data = strings.ReplaceAll(data, " ", "+")

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if len(decoded) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", ErrDecodeFailed)
	}

	return decoded, ext, nil
}

// contentTypeForExtension maps a stored extension to its MIME type.
func contentTypeForExtension(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
