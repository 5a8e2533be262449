package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	DefaultTextEncoding  = "utf-8"
	DefaultTextMediaType = "text/plain"
)

// EncodeText encodes content with the named charset and returns the bytes
// together with a Content-Type carrying that charset.
func EncodeText(content, encoding, mediaType string) ([]byte, string, error) {
	if encoding == "" {
		encoding = DefaultTextEncoding
	}
	if mediaType == "" {
		mediaType = DefaultTextMediaType
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, "", fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(encoding)
	}

	buf, err := enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", name, err)
	}
	return buf, fmt.Sprintf("%s; charset=%s", mediaType, name), nil
}
