package diag

// Kind defines the severity class of a diagnostic.
type Kind uint8

const (
	// KindOther is for diagnostics outside the usual severity classes.
	KindOther Kind = iota
	// KindNote is for informational diagnostics.
	KindNote
	// KindWarning is for warning diagnostics.
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "OTHER"
	case KindNote:
		return "NOTE"
	case KindWarning:
		return "WARNING"
	case KindError:
		return "ERROR"
	}
	return "UNKNOWN"
}
