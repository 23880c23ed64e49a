// Package charset implements per-invocation source-encoding policy: option
// scanning, charset lookup by name, and strict decoding that surfaces the
// first unmappable byte instead of silently substituting it.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknown is returned by Lookup for charset names no decoder exists for.
var ErrUnknown = errors.New("unsupported character encoding")

// Charset is one named character encoding. The name is preserved exactly as
// the caller spelled it so later introspection reports it verbatim.
type Charset struct {
	name   string
	enc    encoding.Encoding
	isUTF8 bool
}

// Name returns the charset name as originally requested.
func (c Charset) Name() string {
	return c.name
}

// IsUTF8 reports whether the charset decodes as UTF-8.
func (c Charset) IsUTF8() bool {
	return c.isUTF8
}

// Default returns the fixed tool-wide default source encoding. It is not
// locale-sniffed: every invocation without an explicit option decodes UTF-8.
func Default() Charset {
	return Charset{name: "UTF-8", enc: unicode.UTF8, isUTF8: true}
}

// Lookup resolves a charset by name. Common names are mapped directly so
// their semantics match the usual compiler toolchain behaviour (UTF-16 is
// BOM-sniffing with big-endian fallback); anything else goes through the
// IANA index.
func Lookup(name string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return Charset{name: name, enc: unicode.UTF8, isUTF8: true}, nil
	case "utf-16", "utf16":
		return Charset{name: name, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}, nil
	case "utf-16be":
		return Charset{name: name, enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}, nil
	case "utf-16le":
		return Charset{name: name, enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}, nil
	case "iso-8859-1", "latin-1", "latin1":
		return Charset{name: name, enc: charmap.ISO8859_1, isUTF8: false}, nil
	case "":
		return Charset{}, fmt.Errorf("%w: empty name", ErrUnknown)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Charset{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return Charset{name: name, enc: enc}, nil
}
