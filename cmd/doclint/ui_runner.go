package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"doclint/internal/driver"
	"doclint/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI checks path while a Bubble Tea view follows the per-bundle
// progress events. The view exits when the driver closes the event stream.
func runCheckWithUI(ctx context.Context, title string, files []string, path string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, path, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
