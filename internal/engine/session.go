package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"buildjar/internal/charset"
	"buildjar/internal/diag"
	"buildjar/internal/source"
)

// Unit is one compilation unit: a source file named in the arguments or a
// generated source contributed by a processor.
type Unit struct {
	Path      string
	FileID    source.FileID
	Name      string // set by the engine once the declaration is known
	Generated bool
	Broken    bool // decode failed; engines skip broken units
}

// SessionConfig carries everything needed to build one session.
type SessionConfig struct {
	Charset          charset.Charset
	ExplicitEncoding bool

	Options       []string
	ClassPath     []string
	BootClassPath []string
	SourcePath    []string
	ProcessorPath []string

	ClassOutput  string
	SourceOutput string

	Plugins         []Plugin
	Processors      []Processor
	ProcessorsFixed bool // false: discover processors from ProcessorPath

	Reporter diag.Reporter
	Progress ProgressSink
}

// Session is the engine-facing state of one invocation. It is built once
// per invocation, mutated only by the invocation that owns it, and kept
// alive by the result for later introspection.
type Session struct {
	fm       *FileManager
	fs       *source.FileSet
	reporter diag.Reporter
	progress ProgressSink

	options       []string
	classPath     []string
	bootClassPath []string
	sourcePath    []string
	processorPath []string
	classOutput   string
	sourceOutput  string

	plugins    []Plugin
	processors []Processor
	units      []Unit
}

func NewSession(cfg SessionConfig) *Session {
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	fs := source.NewFileSet()

	processors := cfg.Processors
	if !cfg.ProcessorsFixed {
		processors = DiscoverProcessors(cfg.ProcessorPath, reporter)
	}

	return &Session{
		fm:            NewFileManager(cfg.Charset, cfg.ExplicitEncoding, reporter, fs),
		fs:            fs,
		reporter:      reporter,
		progress:      cfg.Progress,
		options:       cfg.Options,
		classPath:     cfg.ClassPath,
		bootClassPath: cfg.BootClassPath,
		sourcePath:    cfg.SourcePath,
		processorPath: cfg.ProcessorPath,
		classOutput:   cfg.ClassOutput,
		sourceOutput:  cfg.SourceOutput,
		plugins:       cfg.Plugins,
		processors:    processors,
	}
}

// LoadSources decodes every argument source into the session, in argument
// order. Decode failures become diagnostics and broken units, not errors.
func (s *Session) LoadSources(paths []string) {
	for _, path := range paths {
		s.Emit(Event{File: path, Stage: StageDecode, Status: StatusWorking})
		id, ok := s.fm.Load(path)
		s.units = append(s.units, Unit{Path: path, FileID: id, Broken: !ok})
		status := StatusDone
		if !ok {
			status = StatusError
		}
		s.Emit(Event{File: path, Stage: StageDecode, Status: status})
	}
}

// AddGenerated contributes a generated source. The text is UTF-8 already;
// it bypasses charset decoding. When a source output directory is
// configured the text is also written there.
func (s *Session) AddGenerated(name string, text []byte) error {
	path := name
	if s.sourceOutput != "" {
		path = filepath.Join(s.sourceOutput, name)
		if err := os.MkdirAll(s.sourceOutput, 0o755); err != nil {
			return fmt.Errorf("create source output: %w", err)
		}
		if err := os.WriteFile(path, text, 0o644); err != nil { // #nosec G306 -- generated sources are not secrets
			return fmt.Errorf("write generated source: %w", err)
		}
	}
	id := s.fs.AddVirtual(path, text)
	s.units = append(s.units, Unit{Path: path, FileID: id, Generated: true})
	return nil
}

// Emit forwards a progress event if a sink is attached.
func (s *Session) Emit(ev Event) {
	if s.progress != nil {
		s.progress.OnEvent(ev)
	}
}

// FileManager returns the session's file manager. The decoding charset that
// was actually used is observable here.
func (s *Session) FileManager() *FileManager { return s.fm }

// Files returns the session's decoded file set.
func (s *Session) Files() *source.FileSet { return s.fs }

// Reporter returns the diagnostic sink for this invocation.
func (s *Session) Reporter() diag.Reporter { return s.reporter }

// Units returns the compilation units in load order.
func (s *Session) Units() []Unit { return s.units }

// UnitAt returns a mutable unit; engines use it to record unit names.
func (s *Session) UnitAt(i int) *Unit { return &s.units[i] }

func (s *Session) Options() []string       { return s.options }
func (s *Session) ClassPath() []string     { return s.classPath }
func (s *Session) BootClassPath() []string { return s.bootClassPath }
func (s *Session) SourcePath() []string    { return s.sourcePath }
func (s *Session) ProcessorPath() []string { return s.processorPath }
func (s *Session) ClassOutput() string     { return s.classOutput }
func (s *Session) SourceOutput() string    { return s.sourceOutput }
func (s *Session) Plugins() []Plugin       { return s.plugins }
func (s *Session) Processors() []Processor { return s.processors }
