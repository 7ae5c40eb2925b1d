package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bracefmt/internal/batch"
	"bracefmt/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

// runBatchWithUI renders files while a Bubble Tea view shows their progress.
func runBatchWithUI(ctx context.Context, title string, files []string, positional []any, keyword map[string]any, opts batch.Options) ([]batch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.RenderFiles(ctx, files, positional, keyword, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Aborted(final) {
		cancel()
	}
	// вид мог закрыться раньше (ctrl+c): дочитываем события, чтобы батч не встал на отправке
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
