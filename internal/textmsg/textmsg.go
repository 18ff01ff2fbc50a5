// Package textmsg implements the generic text-payload codec mentioned in
// the overview as a separate, simpler sibling to the chart codec:
// base32(brotli(utf8(upper(s)))).
package textmsg

import (
	"bytes"
	"encoding/base32"
	"io"

	"github.com/andybalholm/brotli"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Encode upper-cases s, Brotli-compresses the UTF-8 bytes, and returns the
// result Base32-encoded (standard alphabet, no padding).
func Encode(s string) (string, error) {
	upped := upper.String(s)

	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write([]byte(upped)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode: Base32-decode, Brotli-decompress, return as a
// string (already upper-cased by the encoder).
func Decode(encoded string) (string, error) {
	compressed, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(encoded)
	if err != nil {
		return "", err
	}

	r := brotli.NewReader(bytes.NewReader(compressed))
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
