package diag

import (
	"fmt"
)

// Pos is a human-readable position in a source file. Line and Col are
// 1-based; a zero Line means "no position".
type Pos struct {
	Path string
	Line uint32
	Col  uint32
}

// IsValid reports whether the position points at an actual source location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return p.Path
	}
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Col)
}

// Diagnostic is one engine-emitted message. Values are created during an
// invocation and never mutated afterwards.
type Diagnostic struct {
	Kind    Kind
	Code    Code
	Message string
	Pos     Pos
}

func New(kind Kind, code Code, pos Pos, msg string) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Code:    code,
		Message: msg,
		Pos:     pos,
	}
}

func NewError(code Code, pos Pos, msg string) Diagnostic {
	return New(KindError, code, pos, msg)
}

func NewWarning(code Code, pos Pos, msg string) Diagnostic {
	return New(KindWarning, code, pos, msg)
}

// Format renders the diagnostic as a single human-readable line:
//
//	ERROR: path:3:7: unmappable character (0xf6) for encoding UTF-8
func (d Diagnostic) Format() string {
	if d.Pos.IsValid() || d.Pos.Path != "" {
		return fmt.Sprintf("%s: %s: %s", d.Kind, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
