package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

type ErrAborted struct{}

func (r ErrAborted) Error() string {
	return "aborted by user"
}

// Run shows the progress of job on stderr and returns its result.
func Run(title string, job Job) (any, error) {
	var program *tea.Program
	model := NewProgress(title, job)
	model.send = func(msg tea.Msg) {
		program.Send(msg)
	}
	program = tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := program.StartReturningModel()
	if err != nil {
		err := errors.Wrap(err, "ui.Run error")
		return nil, err
	}
	progress := final.(Progress)
	if progress.aborted {
		return nil, ErrAborted{}
	}
	return progress.result, progress.err
}
