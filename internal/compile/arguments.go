package compile

import (
	"errors"
	"slices"

	"buildjar/internal/engine"
)

var (
	// ErrNoSources rejects an invocation with nothing to compile.
	ErrNoSources = errors.New("compilation requires at least one source file")
	// ErrNoClassOutput rejects an invocation with no output location.
	ErrNoClassOutput = errors.New("compilation requires a class output directory")
)

// Arguments describes one compilation request. Values are built once
// through a Builder, validated there, and never mutated afterwards; a new
// compilation requires new Arguments.
type Arguments struct {
	sourceFiles   []string
	options       []string
	classPath     []string
	bootClassPath []string
	sourcePath    []string
	processorPath []string
	plugins       []engine.Plugin
	processors    []engine.Processor
	processorsSet bool
	classOutput   string
	sourceOutput  string
}

// Builder accumulates argument fields. Build validates required fields and
// freezes the value; the builder may be reused afterwards without affecting
// already-built Arguments.
type Builder struct {
	args Arguments
}

func NewBuilder() *Builder {
	return &Builder{}
}

// SourceFiles sets the ordered source files to compile.
func (b *Builder) SourceFiles(paths ...string) *Builder {
	b.args.sourceFiles = slices.Clone(paths)
	return b
}

// Options sets raw tool options. Order is significant; the list may carry
// an explicit "-encoding NAME" pair.
func (b *Builder) Options(options ...string) *Builder {
	b.args.options = slices.Clone(options)
	return b
}

func (b *Builder) ClassPath(paths ...string) *Builder {
	b.args.classPath = slices.Clone(paths)
	return b
}

func (b *Builder) BootClassPath(paths ...string) *Builder {
	b.args.bootClassPath = slices.Clone(paths)
	return b
}

func (b *Builder) SourcePath(paths ...string) *Builder {
	b.args.sourcePath = slices.Clone(paths)
	return b
}

func (b *Builder) ProcessorPath(paths ...string) *Builder {
	b.args.processorPath = slices.Clone(paths)
	return b
}

func (b *Builder) Plugins(plugins ...engine.Plugin) *Builder {
	b.args.plugins = slices.Clone(plugins)
	return b
}

// Processors fixes the processor set explicitly. Leaving it unset lets the
// session discover processors from the processor path instead.
func (b *Builder) Processors(processors ...engine.Processor) *Builder {
	b.args.processors = slices.Clone(processors)
	b.args.processorsSet = true
	return b
}

// ClassOutput sets the directory compiled artifacts are written under.
func (b *Builder) ClassOutput(dir string) *Builder {
	b.args.classOutput = dir
	return b
}

// SourceOutput sets the optional directory for generated sources.
func (b *Builder) SourceOutput(dir string) *Builder {
	b.args.sourceOutput = dir
	return b
}

// Build validates and returns immutable Arguments.
func (b *Builder) Build() (*Arguments, error) {
	if err := b.args.validate(); err != nil {
		return nil, err
	}
	args := Arguments{
		sourceFiles:   slices.Clone(b.args.sourceFiles),
		options:       slices.Clone(b.args.options),
		classPath:     slices.Clone(b.args.classPath),
		bootClassPath: slices.Clone(b.args.bootClassPath),
		sourcePath:    slices.Clone(b.args.sourcePath),
		processorPath: slices.Clone(b.args.processorPath),
		plugins:       slices.Clone(b.args.plugins),
		processors:    slices.Clone(b.args.processors),
		processorsSet: b.args.processorsSet,
		classOutput:   b.args.classOutput,
		sourceOutput:  b.args.sourceOutput,
	}
	return &args, nil
}

func (a *Arguments) validate() error {
	if len(a.sourceFiles) == 0 {
		return ErrNoSources
	}
	if a.classOutput == "" {
		return ErrNoClassOutput
	}
	return nil
}

// Accessors return copies so the value stays immutable from the outside.

func (a *Arguments) SourceFiles() []string   { return slices.Clone(a.sourceFiles) }
func (a *Arguments) Options() []string       { return slices.Clone(a.options) }
func (a *Arguments) ClassPath() []string     { return slices.Clone(a.classPath) }
func (a *Arguments) BootClassPath() []string { return slices.Clone(a.bootClassPath) }
func (a *Arguments) SourcePath() []string    { return slices.Clone(a.sourcePath) }
func (a *Arguments) ProcessorPath() []string { return slices.Clone(a.processorPath) }
func (a *Arguments) Plugins() []engine.Plugin {
	return slices.Clone(a.plugins)
}
func (a *Arguments) ClassOutput() string  { return a.classOutput }
func (a *Arguments) SourceOutput() string { return a.sourceOutput }

// Processors returns the fixed processor set and whether one was set at
// all. (nil, false) means "discover processors from the processor path".
func (a *Arguments) Processors() ([]engine.Processor, bool) {
	if !a.processorsSet {
		return nil, false
	}
	return slices.Clone(a.processors), true
}
