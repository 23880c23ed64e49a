package compile

import (
	"context"
	"fmt"

	"buildjar/internal/charset"
	"buildjar/internal/diag"
	"buildjar/internal/engine"
)

// State is the lifecycle of one invoker. Completed is terminal and is
// reached whenever the engine returns control, successful or not.
type State string

const (
	// StateConfigured means the invoker holds validated arguments and has
	// not run yet.
	StateConfigured State = "configured"
	// StateRunning means the engine currently owns the session.
	StateRunning State = "running"
	// StateCompleted means a Result was produced.
	StateCompleted State = "completed"
)

// Options tunes one invocation beyond the Arguments themselves.
type Options struct {
	// Engine overrides the compiler engine; nil picks the reference engine.
	Engine engine.Engine
	// Progress receives per-unit stage events when non-nil.
	Progress engine.ProgressSink
	// Jobs bounds the reference engine's internal concurrency.
	Jobs int
}

// Invoker owns exactly one compilation attempt. It is not reusable: retry
// means building new Arguments and a new Invoker.
type Invoker struct {
	args      *Arguments
	opts      Options
	state     State
	collector *diag.Collector
}

func NewInvoker(args *Arguments, opts *Options) *Invoker {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Engine == nil {
		o.Engine = &engine.Checker{Jobs: o.Jobs}
	}
	return &Invoker{
		args:      args,
		opts:      o,
		state:     StateConfigured,
		collector: diag.NewCollector(),
	}
}

// Compile runs one compilation with the default engine. It blocks until the
// invocation completes and never returns an error for well-formed
// arguments: compile failures land in the Result.
func Compile(ctx context.Context, args *Arguments) (*Result, error) {
	return NewInvoker(args, nil).Invoke(ctx)
}

// CompileWith runs one compilation with explicit options.
func CompileWith(ctx context.Context, args *Arguments, opts *Options) (*Result, error) {
	return NewInvoker(args, opts).Invoke(ctx)
}

// State returns the current lifecycle state.
func (inv *Invoker) State() State {
	return inv.state
}

// Invoke drives the single compilation attempt and produces the Result.
// A non-nil error means no Result could be produced at all; everything the
// engine can express as a diagnostic ends up in the Result instead.
func (inv *Invoker) Invoke(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if inv.state != StateConfigured {
		return nil, fmt.Errorf("invoker already %s; build a new invocation to retry", inv.state)
	}
	if inv.args == nil {
		return nil, fmt.Errorf("missing arguments")
	}
	// Arguments are validated at Build time; recheck in case the value was
	// constructed some other way.
	if err := inv.args.validate(); err != nil {
		return nil, err
	}

	cs, explicit, err := charset.Resolve(inv.args.Options())
	if err != nil {
		return nil, err
	}

	processors, fixed := inv.args.Processors()
	sess := engine.NewSession(engine.SessionConfig{
		Charset:          cs,
		ExplicitEncoding: explicit,
		Options:          inv.args.Options(),
		ClassPath:        inv.args.ClassPath(),
		BootClassPath:    inv.args.BootClassPath(),
		SourcePath:       inv.args.SourcePath(),
		ProcessorPath:    inv.args.ProcessorPath(),
		ClassOutput:      inv.args.ClassOutput(),
		SourceOutput:     inv.args.SourceOutput(),
		Plugins:          inv.args.Plugins(),
		Processors:       processors,
		ProcessorsFixed:  fixed,
		Reporter:         diag.CollectorReporter{Collector: inv.collector},
		Progress:         inv.opts.Progress,
	})
	inv.state = StateRunning

	sess.LoadSources(inv.args.SourceFiles())

	for _, p := range sess.Plugins() {
		if hookErr := p.BeforeCompile(sess); hookErr != nil {
			inv.collector.Add(diag.NewError(diag.PluginFailure, diag.Pos{},
				fmt.Sprintf("plugin %s failed before compilation: %v", p.Name(), hookErr)))
		}
	}
	for _, p := range sess.Processors() {
		if procErr := p.Process(sess); procErr != nil {
			inv.collector.Add(diag.NewError(diag.ProcFailure, diag.Pos{},
				fmt.Sprintf("processor %s failed: %v", p.Name(), procErr)))
		}
	}

	if runErr := inv.opts.Engine.Run(ctx, sess); runErr != nil {
		// Engine-level fault that the engine could not express as a
		// diagnostic. Keep the Result total: synthesize an ERROR instead of
		// masking the fault or failing the call.
		inv.collector.Add(diag.NewError(diag.EngineFailure, diag.Pos{},
			fmt.Sprintf("engine %s failed: %v", inv.opts.Engine.Name(), runErr)))
	}

	for _, p := range sess.Plugins() {
		if hookErr := p.AfterCompile(sess, !inv.collector.HasErrors()); hookErr != nil {
			inv.collector.Add(diag.NewError(diag.PluginFailure, diag.Pos{},
				fmt.Sprintf("plugin %s failed after compilation: %v", p.Name(), hookErr)))
		}
	}

	ok := !inv.collector.HasErrors()
	inv.collector.Seal()
	inv.state = StateCompleted
	return newResult(ok, inv.collector.Snapshot(), sess), nil
}
