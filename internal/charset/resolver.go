package charset

import (
	"fmt"
)

// EncodingFlag is the tool-option flag that selects the source encoding,
// passed as a flag/value pair inside the raw option list. It uses the same
// primary name the engine recognizes; there is no separate channel for it.
const EncodingFlag = "-encoding"

// Resolve determines the charset used to decode every source file of one
// invocation. It scans the raw options for EncodingFlag/value pairs; the
// last occurrence wins and is authoritative for the whole invocation. With
// no flag present the fixed default applies. The boolean reports whether the
// encoding was explicitly requested.
//
// Resolve never inspects file contents; encoding is a property of the
// invocation, uniform across all its sources.
func Resolve(options []string) (Charset, bool, error) {
	name := ""
	for i := 0; i < len(options); i++ {
		if options[i] != EncodingFlag {
			continue
		}
		if i+1 >= len(options) {
			return Charset{}, false, fmt.Errorf("option %s: missing value", EncodingFlag)
		}
		// последнее вхождение выигрывает
		name = options[i+1]
		i++
	}
	if name == "" {
		return Default(), false, nil
	}
	cs, err := Lookup(name)
	if err != nil {
		return Charset{}, false, err
	}
	return cs, true, nil
}
