package engine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"buildjar/internal/diag"
)

// Plugin participates in compilation phases around the engine run. Plugins
// are capability-typed handles; the invoker never depends on a concrete
// implementation.
type Plugin interface {
	Name() string
	BeforeCompile(sess *Session) error
	AfterCompile(sess *Session, ok bool) error
}

// Processor is an annotation-processor handle. Process runs before the
// engine and may contribute generated sources via Session.AddGenerated.
type Processor interface {
	Name() string
	Process(sess *Session) error
}

var (
	procMu       sync.RWMutex
	procRegistry = map[string]func() Processor{}
)

// RegisterProcessor makes a processor factory discoverable by name through
// processor-path manifests.
func RegisterProcessor(name string, factory func() Processor) {
	procMu.Lock()
	defer procMu.Unlock()
	procRegistry[name] = factory
}

func lookupProcessor(name string) (func() Processor, bool) {
	procMu.RLock()
	defer procMu.RUnlock()
	f, ok := procRegistry[name]
	return f, ok
}

// NewProcessor instantiates a registered processor by name.
func NewProcessor(name string) (Processor, bool) {
	factory, ok := lookupProcessor(name)
	if !ok {
		return nil, false
	}
	return factory(), true
}

// DiscoverProcessors scans the processor path for "*.processor" manifest
// files, each naming one registered processor, and instantiates them in a
// deterministic order. Unknown names are reported as warnings so a stale
// manifest cannot silently change compilation results.
func DiscoverProcessors(processorPath []string, reporter diag.Reporter) []Processor {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	var names []string
	for _, dir := range processorPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".processor") {
				continue
			}
			raw, err := os.ReadFile(filepath.Join(dir, e.Name())) // #nosec G304 -- dir comes from the invocation arguments
			if err != nil {
				continue
			}
			name := strings.TrimSpace(strings.SplitN(string(raw), "\n", 2)[0])
			if name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	out := make([]Processor, 0, len(names))
	for _, name := range names {
		factory, ok := lookupProcessor(name)
		if !ok {
			reporter.Report(diag.KindWarning, diag.ProcUnknownProcessor, diag.Pos{},
				"processor "+name+" named on the processor path is not registered")
			continue
		}
		out = append(out, factory())
	}
	return out
}
