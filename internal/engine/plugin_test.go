package engine

import (
	"os"
	"path/filepath"
	"testing"

	"buildjar/internal/diag"
)

type namedProcessor struct {
	name string
}

func (p *namedProcessor) Name() string { return p.name }

func (p *namedProcessor) Process(*Session) error { return nil }

func writeManifest(t *testing.T, dir, file, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(name+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverProcessors(t *testing.T) {
	RegisterProcessor("alpha", func() Processor { return &namedProcessor{name: "alpha"} })
	RegisterProcessor("beta", func() Processor { return &namedProcessor{name: "beta"} })

	dir := t.TempDir()
	writeManifest(t, dir, "b.processor", "beta")
	writeManifest(t, dir, "a.processor", "alpha")
	// Не-манифесты игнорируются.
	writeManifest(t, dir, "readme.txt", "gamma")

	col := diag.NewCollector()
	procs := DiscoverProcessors([]string{dir}, diag.CollectorReporter{Collector: col})
	if len(procs) != 2 {
		t.Fatalf("expected 2 processors, got %d", len(procs))
	}
	// Manifests instantiate in sorted name order regardless of file order.
	if procs[0].Name() != "alpha" || procs[1].Name() != "beta" {
		t.Errorf("order = %s, %s", procs[0].Name(), procs[1].Name())
	}
	if col.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", col.Items())
	}
}

func TestNewProcessor(t *testing.T) {
	RegisterProcessor("gamma", func() Processor { return &namedProcessor{name: "gamma"} })

	p, ok := NewProcessor("gamma")
	if !ok || p.Name() != "gamma" {
		t.Errorf("NewProcessor(gamma) = %v, %v", p, ok)
	}
	if _, ok := NewProcessor("no-such"); ok {
		t.Error("unknown name must not instantiate")
	}
}

func TestDiscoverProcessorsUnknownNameWarns(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "x.processor", "never-registered")

	col := diag.NewCollector()
	procs := DiscoverProcessors([]string{dir}, diag.CollectorReporter{Collector: col})
	if len(procs) != 0 {
		t.Fatalf("expected no processors, got %d", len(procs))
	}
	if col.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", col.Len())
	}
	d := col.Items()[0]
	if d.Kind != diag.KindWarning || d.Code != diag.ProcUnknownProcessor {
		t.Errorf("diagnostic = %v", d)
	}
}

func TestDiscoverProcessorsMissingDirIsSilent(t *testing.T) {
	col := diag.NewCollector()
	procs := DiscoverProcessors([]string{filepath.Join(t.TempDir(), "nope")}, diag.CollectorReporter{Collector: col})
	if len(procs) != 0 || col.Len() != 0 {
		t.Errorf("missing dir must be silent: procs=%d diags=%d", len(procs), col.Len())
	}
}

func TestSessionFixedProcessorsSkipDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "x.processor", "never-registered")

	col := diag.NewCollector()
	sess := NewSession(SessionConfig{
		ProcessorPath:   []string{dir},
		Processors:      []Processor{&namedProcessor{name: "fixed"}},
		ProcessorsFixed: true,
		Reporter:        diag.CollectorReporter{Collector: col},
	})
	if len(sess.Processors()) != 1 || sess.Processors()[0].Name() != "fixed" {
		t.Errorf("processors = %v", sess.Processors())
	}
	if col.Len() != 0 {
		t.Errorf("fixed processors must not scan the path: %v", col.Items())
	}
}

func TestAddGeneratedWritesToSourceOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen")
	sess := NewSession(SessionConfig{
		SourceOutput:    out,
		ProcessorsFixed: true,
	})

	if err := sess.AddGenerated("Gen.java", []byte("class Gen { }\n")); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(out, "Gen.java"))
	if err != nil {
		t.Fatalf("generated source not written: %v", err)
	}
	if string(raw) != "class Gen { }\n" {
		t.Errorf("generated content = %q", raw)
	}

	units := sess.Units()
	if len(units) != 1 || !units[0].Generated {
		t.Fatalf("units = %v", units)
	}
}
