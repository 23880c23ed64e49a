package diag

// Collector accumulates every diagnostic emitted during exactly one
// invocation, in emission order. It never deduplicates, reorders or
// truncates. One Collector per invocation; Seal it when the invocation
// completes so stale diagnostics can never leak into a later run.
type Collector struct {
	items  []Diagnostic
	sealed bool
}

func NewCollector() *Collector {
	return &Collector{
		items: make([]Diagnostic, 0, 8),
	}
}

// Add добавляет диагностику в порядке поступления.
// Возвращает false, если коллектор уже запечатан.
func (c *Collector) Add(d Diagnostic) bool {
	if c.sealed {
		return false
	}
	c.items = append(c.items, d)
	return true
}

// Seal marks the collector read-only. Further Add calls are rejected.
func (c *Collector) Seal() {
	c.sealed = true
}

// Sealed reports whether the invocation that owns this collector completed.
func (c *Collector) Sealed() bool {
	return c.sealed
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Kind == Error.
func (c *Collector) HasErrors() bool {
	for i := range c.items {
		if c.items[i].Kind == KindError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Kind >= Warning.
func (c *Collector) HasWarnings() bool {
	for i := range c.items {
		if c.items[i].Kind >= KindWarning {
			return true
		}
	}
	return false
}

// длина
func (c *Collector) Len() int {
	return len(c.items)
}

// Items возвращает read-only slice диагностик в порядке поступления.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив)
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// Snapshot returns an independent copy of the accumulated diagnostics, for
// results that must outlive the collector.
func (c *Collector) Snapshot() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}
