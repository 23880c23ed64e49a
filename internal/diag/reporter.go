package diag

// Reporter — минимальный контракт получения диагностик от фаз движка.
// Реализации: CollectorReporter (кладёт в Collector), NopReporter.
type Reporter interface {
	Report(kind Kind, code Code, pos Pos, msg string)
}

// CollectorReporter — адаптер, который пишет в *Collector.
type CollectorReporter struct{ Collector *Collector }

func (r CollectorReporter) Report(kind Kind, code Code, pos Pos, msg string) {
	if r.Collector == nil {
		return
	}
	r.Collector.Add(Diagnostic{
		Kind: kind, Code: code, Message: msg, Pos: pos,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Kind, Code, Pos, string) {}
