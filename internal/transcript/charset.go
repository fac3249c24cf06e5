package transcript

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-message/charset"
)

// decodeText decodes payload bytes under the charset declared by the
// enclosing Content-Type. us-ascii and utf-8 are checked strictly here
// because the table-driven decoders silently substitute replacement
// characters; every other label goes through the go-message charset
// registry, which knows the usual mail aliases.
func decodeText(payload []byte, label string) (string, error) {
	switch strings.ToLower(label) {
	case "us-ascii", "ascii", "ansi_x3.4-1968":
		for i := 0; i < len(payload); i++ {
			if payload[i] >= 0x80 {
				return "", fmt.Errorf("decoding payload as %s: byte 0x%02x at offset %d is not ASCII", label, payload[i], i)
			}
		}
		return string(payload), nil
	case "utf-8", "utf8":
		if !utf8.Valid(payload) {
			return "", fmt.Errorf("decoding payload as %s: invalid UTF-8 sequence", label)
		}
		return string(payload), nil
	default:
		r, err := charset.Reader(label, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("decoding payload as %s: %w", label, err)
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("decoding payload as %s: %w", label, err)
		}
		// The table-driven decoders report invalid input by emitting
		// U+FFFD instead of failing. A replacement character that was
		// not literally present in the payload means the bytes did not
		// decode under the declared charset.
		if bytes.ContainsRune(decoded, utf8.RuneError) && !bytes.Contains(payload, []byte(string(utf8.RuneError))) {
			return "", fmt.Errorf("decoding payload as %s: invalid byte sequence", label)
		}
		return string(decoded), nil
	}
}
