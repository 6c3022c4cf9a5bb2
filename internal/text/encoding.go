package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DecodeError reports content that could not be decoded with the requested
// encoding. Offset is the byte position of the first undecodable sequence.
type DecodeError struct {
	Encoding string
	Offset   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode content with %s encoding at byte offset %d", e.Encoding, e.Offset)
}

// NormalizeEncoding maps an empty or missing encoding name to utf-8.
func NormalizeEncoding(name string) string {
	if name == "" {
		return "utf-8"
	}
	return name
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Decode converts raw file bytes into text under the named encoding. An
// empty name means utf-8. Bytes that do not form valid sequences for the
// encoding produce a DecodeError.
func Decode(data []byte, encodingName string) (string, error) {
	name := NormalizeEncoding(encodingName)
	if isUTF8(name) {
		if !utf8.Valid(data) {
			return "", &DecodeError{Encoding: name, Offset: invalidUTF8Offset(data)}
		}
		return string(data), nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: name, Offset: 0}
	}
	// Charmap decoders substitute U+FFFD for undefined bytes instead of
	// failing, so a replacement rune in the output marks bad input.
	if i := strings.IndexRune(string(decoded), utf8.RuneError); i >= 0 {
		return "", &DecodeError{Encoding: name, Offset: i}
	}
	return string(decoded), nil
}

// Encode converts text to raw bytes under the named encoding. An empty name
// means utf-8.
func Encode(content string, encodingName string) ([]byte, error) {
	name := NormalizeEncoding(encodingName)
	if isUTF8(name) {
		return []byte(content), nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("cannot encode content as %s: %w", name, err)
	}
	return encoded, nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}
