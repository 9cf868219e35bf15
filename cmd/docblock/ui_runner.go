package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docblock/internal/driver"
	"docblock/internal/ui"
)

type renderOutcome struct {
	results []driver.Result
	err     error
}

// runRenderWithUI runs the batch behind a progress display. The driver works
// in a goroutine, feeding stage events into the Bubble Tea model.
func runRenderWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.Result, error) {
	files, err := driver.ListDocFiles(paths)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan renderOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.RenderPaths(ctx, paths, optsCopy)
		outcomeCh <- renderOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
