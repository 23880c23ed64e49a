package charset

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// UnmappableError describes the first byte of a source that cannot be
// decoded under the resolved charset. It is not a resolver failure: callers
// turn it into an ERROR diagnostic referencing the byte and the charset.
type UnmappableError struct {
	Byte    byte
	Offset  int
	Charset string
}

func (e *UnmappableError) Error() string {
	return fmt.Sprintf("unmappable character (%#02x) for encoding %s", e.Byte, e.Charset)
}

// Decode converts src into UTF-8 text. On the first byte sequence that is
// unmappable under the charset it stops and returns the successfully decoded
// prefix together with an UnmappableError locating the offending byte.
func (c Charset) Decode(src []byte) ([]byte, *UnmappableError) {
	if c.enc == nil {
		// zero Charset decodes as the default
		return Default().Decode(src)
	}
	if c.isUTF8 {
		return c.decodeUTF8(src)
	}
	return c.decodeTransform(src)
}

func (c Charset) decodeUTF8(src []byte) ([]byte, *UnmappableError) {
	off := 0
	for off < len(src) {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size <= 1 {
			return src[:off], &UnmappableError{Byte: src[off], Offset: off, Charset: c.name}
		}
		off += size
	}
	return src, nil
}

func (c Charset) decodeTransform(src []byte) ([]byte, *UnmappableError) {
	out, err := c.enc.NewDecoder().Bytes(src)
	if err != nil {
		// The decoder refused the input outright; blame the first byte.
		return nil, &UnmappableError{Byte: firstByte(src), Offset: 0, Charset: c.name}
	}
	if !bytes.ContainsRune(out, utf8.RuneError) {
		return out, nil
	}
	// x/text decoders substitute U+FFFD for undecodable input. Walk the
	// output rune by rune against a second decoder pass to find the source
	// byte behind the first substitution, skipping replacement characters
	// that were legitimately present in the input.
	legit := c.encodedReplacement()
	walk := c.enc.NewDecoder()
	srcOff := 0
	for dstOff := 0; dstOff < len(out); {
		r, size := utf8.DecodeRune(out[dstOff:])
		var buf [utf8.UTFMax]byte
		// Budgeting dst to exactly this rune's width makes the decoder
		// consume exactly one rune's worth of input per call.
		nDst, nSrc, _ := walk.Transform(buf[:size], src[srcOff:], true)
		if nSrc == 0 && nDst == 0 {
			return out[:dstOff], &UnmappableError{Byte: firstByte(src[srcOff:]), Offset: srcOff, Charset: c.name}
		}
		if r == utf8.RuneError && !legitReplacement(src[srcOff:srcOff+nSrc], legit) {
			return out[:dstOff], &UnmappableError{Byte: firstByte(src[srcOff:]), Offset: srcOff, Charset: c.name}
		}
		srcOff += nSrc
		dstOff += size
	}
	return out, nil
}

// legitReplacement reports whether the consumed source bytes carried an
// actual U+FFFD rather than one substituted by the decoder. Stateful
// encoders may prefix a BOM to the reference encoding, hence the suffix
// comparisons.
func legitReplacement(consumed, legit []byte) bool {
	if len(legit) == 0 || len(consumed) == 0 {
		return false
	}
	return bytes.Equal(consumed, legit) ||
		bytes.HasSuffix(legit, consumed) ||
		bytes.HasSuffix(consumed, legit)
}

// encodedReplacement returns the charset's own encoding of U+FFFD, or nil
// when the charset cannot represent it.
func (c Charset) encodedReplacement() []byte {
	enc := c.enc.NewEncoder()
	b, err := enc.Bytes([]byte(string(utf8.RuneError)))
	if err != nil {
		return nil
	}
	return b
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
