package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"buildjar/internal/diag"
	"buildjar/internal/source"
)

// Checker is the in-tree reference engine: a shallow well-formedness
// scanner over decoded text, deliberately not a language front-end. It
// verifies that every unit decodes to something declaration-shaped
// (comment- and string-aware delimiter balance, one top-level declaration,
// no stray control characters) and writes a unit artifact per clean unit.
type Checker struct {
	// Jobs bounds concurrent unit analyses; <= 0 picks a small default.
	Jobs int
}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) Name() string { return "checker" }

func (c *Checker) Run(ctx context.Context, sess *Session) error {
	if sess == nil {
		return fmt.Errorf("checker: nil session")
	}
	units := sess.Units()
	results := make([][]diag.Diagnostic, len(units))
	names := make([]string, len(units))

	jobs := c.Jobs
	if jobs <= 0 {
		jobs = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range units {
		if units[i].Broken {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := sess.Files().Get(units[i].FileID)
			names[i], results[i] = analyzeUnit(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Diagnostics surface in unit order no matter which worker finished
	// first, so the collector sees a deterministic emission order.
	for i := range units {
		if units[i].Broken {
			continue
		}
		sess.Emit(Event{File: units[i].Path, Stage: StageCheck, Status: StatusWorking})
		for _, d := range results[i] {
			sess.Reporter().Report(d.Kind, d.Code, d.Pos, d.Message)
		}
		sess.UnitAt(i).Name = names[i]
		status := StatusDone
		if hasError(results[i]) {
			status = StatusError
		}
		sess.Emit(Event{File: units[i].Path, Stage: StageCheck, Status: status})
	}

	// Artifacts for clean units only. A failing invocation may still leave
	// artifacts from units that checked out before the failure; callers
	// must not assume output absence on failure.
	for i := range units {
		u := units[i]
		if u.Broken || hasError(results[i]) {
			continue
		}
		f := sess.Files().Get(u.FileID)
		payload := &UnitPayload{
			Schema:  unitSchemaVersion,
			Name:    names[i],
			Source:  u.Path,
			Hash:    HashString(f.Hash),
			Options: sess.Options(),
		}
		sess.Emit(Event{File: u.Path, Stage: StageEmit, Status: StatusWorking})
		if err := WriteUnit(sess.ClassOutput(), payload); err != nil {
			sess.Reporter().Report(diag.KindError, diag.EngEmitFailed, diag.Pos{Path: u.Path},
				"cannot write output artifact: "+err.Error())
			sess.Emit(Event{File: u.Path, Stage: StageEmit, Status: StatusError, Err: err})
			continue
		}
		sess.Emit(Event{File: u.Path, Stage: StageEmit, Status: StatusDone})
	}
	return nil
}

func hasError(diags []diag.Diagnostic) bool {
	for i := range diags {
		if diags[i].Kind == diag.KindError {
			return true
		}
	}
	return false
}

type word struct {
	text string
	off  int
}

const (
	stCode = iota
	stLineComment
	stBlockComment
	stString
	stChar
)

// analyzeUnit scans one decoded unit and returns its declared name (or the
// file stem) plus the diagnostics found, in source order.
func analyzeUnit(f *source.File) (string, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	text := f.Text
	pos := func(off int) diag.Pos {
		lc := f.LineCol(uint32(off))
		return diag.Pos{Path: f.Path, Line: lc.Line, Col: lc.Col}
	}

	if len(strings.TrimSpace(string(text))) == 0 {
		diags = append(diags, diag.NewWarning(diag.DecodeEmptySourceFile, diag.Pos{Path: f.Path},
			"source file has no content"))
		return stem(f.Path), diags
	}

	type open struct {
		ch  byte
		off int
	}
	var stack []open
	var words []word
	st := stCode
	litOpen := 0
	wordStart := -1
	controlReported := false

	flushWord := func(end int) {
		if wordStart >= 0 {
			words = append(words, word{text: string(text[wordStart:end]), off: wordStart})
			wordStart = -1
		}
	}

	i := 0
	for i < len(text) {
		ch := text[i]
		// control characters are illegal even inside comments
		if ch < 0x20 && ch != '\t' && ch != '\n' && ch != '\r' && !controlReported {
			diags = append(diags, diag.NewError(diag.ChkStrayControlChar, pos(i),
				fmt.Sprintf("illegal character (%#02x)", ch)))
			controlReported = true
		}
		switch st {
		case stLineComment:
			if ch == '\n' {
				st = stCode
			}
		case stBlockComment:
			if ch == '*' && i+1 < len(text) && text[i+1] == '/' {
				st = stCode
				i++
			}
		case stString:
			switch {
			case ch == '\\':
				i++
			case ch == '"':
				st = stCode
			case ch == '\n':
				diags = append(diags, diag.NewError(diag.ChkUnterminatedString, pos(litOpen),
					"unterminated string literal"))
				st = stCode
			}
		case stChar:
			switch {
			case ch == '\\':
				i++
			case ch == '\'':
				st = stCode
			case ch == '\n':
				diags = append(diags, diag.NewError(diag.ChkUnterminatedString, pos(litOpen),
					"unterminated character literal"))
				st = stCode
			}
		default:
			switch {
			case ch == '/' && i+1 < len(text) && text[i+1] == '/':
				flushWord(i)
				st = stLineComment
				i++
			case ch == '/' && i+1 < len(text) && text[i+1] == '*':
				flushWord(i)
				st = stBlockComment
				i++
			case ch == '"':
				flushWord(i)
				st = stString
				litOpen = i
			case ch == '\'':
				flushWord(i)
				st = stChar
				litOpen = i
			case ch == '(' || ch == '{' || ch == '[':
				flushWord(i)
				stack = append(stack, open{ch: ch, off: i})
			case ch == ')' || ch == '}' || ch == ']':
				flushWord(i)
				if len(stack) == 0 || !delimMatches(stack[len(stack)-1].ch, ch) {
					diags = append(diags, diag.NewError(diag.ChkUnexpectedClose, pos(i),
						fmt.Sprintf("unexpected '%c'", ch)))
				}
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			default:
				if isWordByte(ch) {
					if wordStart < 0 {
						wordStart = i
					}
				} else {
					flushWord(i)
				}
			}
		}
		i++
	}
	flushWord(len(text))

	switch st {
	case stString, stChar:
		diags = append(diags, diag.NewError(diag.ChkUnterminatedString, pos(litOpen),
			"unterminated literal at end of file"))
	case stBlockComment:
		diags = append(diags, diag.NewError(diag.ChkUnclosedDelimiter, pos(len(text)-1),
			"unclosed block comment"))
	}
	if len(stack) > 0 {
		diags = append(diags, diag.NewError(diag.ChkUnclosedDelimiter, pos(stack[0].off),
			fmt.Sprintf("unclosed '%c'", stack[0].ch)))
	}

	name, found := declarationName(words)
	if !found {
		diags = append(diags, diag.NewError(diag.ChkMissingDeclaration, diag.Pos{Path: f.Path},
			"expected a class, interface, enum or record declaration"))
	}
	if name == "" {
		name = stem(f.Path)
	}
	return name, diags
}

func delimMatches(open, close byte) bool {
	switch open {
	case '(':
		return close == ')'
	case '{':
		return close == '}'
	case '[':
		return close == ']'
	}
	return false
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func declarationName(words []word) (string, bool) {
	for i, w := range words {
		switch w.text {
		case "class", "interface", "enum", "record":
			if i+1 < len(words) {
				return words[i+1].text, true
			}
			return "", true
		}
	}
	return "", false
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
