package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"buildjar/internal/compile"
	"buildjar/internal/engine"
	"buildjar/internal/ui"
)

type compileOutcome struct {
	result *compile.Result
	err    error
}

func runCompileWithUI(ctx context.Context, title string, files []string, args *compile.Arguments, opts *compile.Options) (*compile.Result, error) {
	if args == nil {
		return nil, fmt.Errorf("missing compile arguments")
	}
	events := make(chan engine.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		optsCopy := compile.Options{}
		if opts != nil {
			optsCopy = *opts
		}
		optsCopy.Progress = engine.ChannelSink{Ch: events}
		res, err := compile.CompileWith(ctx, args, &optsCopy)
		outcomeCh <- compileOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// The program may exit (error, ctrl-c) with events still in flight; keep
	// draining so the compile goroutine never blocks on a full channel.
	go drainEvents(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// drainEvents consumes events until the producer closes the channel.
func drainEvents(events <-chan engine.Event) {
	for range events {
	}
}
