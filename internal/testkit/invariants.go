package testkit

import (
	"fmt"

	"buildjar/internal/compile"
	"buildjar/internal/diag"
)

// CheckResultInvariants runs a minimal set of result invariants on a
// completed invocation:
// 1) the ok flag agrees with the collected diagnostics
// 2) the session handle is valid and reports a resolved charset
// 3) every diagnostic renders to non-empty text
func CheckResultInvariants(res *compile.Result) error {
	if res == nil {
		return fmt.Errorf("nil result")
	}

	// 1) ok ⟺ no ERROR-kind diagnostic
	hasError := false
	for _, d := range res.Diagnostics() {
		if d.Kind == diag.KindError {
			hasError = true
			break
		}
	}
	if res.Ok() == hasError {
		return fmt.Errorf("ok=%v disagrees with diagnostics (hasError=%v)", res.Ok(), hasError)
	}

	// 2) session introspection must survive the invoker
	sess := res.Session()
	if sess == nil {
		return fmt.Errorf("nil session on result")
	}
	fm := sess.FileManager()
	if fm == nil {
		return fmt.Errorf("nil file manager on session")
	}
	if fm.EncodingName() == "" {
		return fmt.Errorf("empty resolved encoding name")
	}
	if fm.Decoder("").Name() != fm.EncodingName() {
		return fmt.Errorf("decoder fallback disagrees with resolved encoding")
	}

	// 3) rendering
	for i, d := range res.Diagnostics() {
		if d.Format() == "" {
			return fmt.Errorf("diagnostic %d renders empty", i)
		}
	}
	return nil
}
