package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	// Status is one progress report of a running job. Total is zero when
	// the size is not known.
	Status struct {
		Label string
		Done  int64
		Total int64
	}
	// Job runs outside the event loop and may call report from its own
	// goroutine.
	Job func(report func(Status)) (any, error)

	statusMsg Status
	doneMsg   struct {
		result any
		err    error
	}

	// Progress shows a bar for a single job and quits once it finishes.
	Progress struct {
		title   string
		job     Job
		send    func(tea.Msg)
		status  Status
		result  any
		err     error
		done    bool
		aborted bool
	}
)

const BarWidth = 30

func NewProgress(title string, job Job) Progress {
	return Progress{
		title: title,
		job:   job,
	}
}

func (s Progress) run() tea.Msg {
	report := func(status Status) {
		if s.send != nil {
			s.send(statusMsg(status))
		}
	}
	result, err := s.job(report)
	return doneMsg{result: result, err: err}
}

func (s Progress) Init() tea.Cmd {
	return s.run
}

func (s Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		s.status = Status(msg)
	case doneMsg:
		s.result = msg.result
		s.err = msg.err
		s.done = true
		return s, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			s.aborted = true
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s Status) Ratio() float64 {
	if s.Total <= 0 {
		return 0
	}
	ratio := float64(s.Done) / float64(s.Total)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func Bar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (s Progress) View() string {
	output := s.title + "\n\n"
	switch {
	case s.aborted:
		output += "Aborted.\n"
	case s.done && s.err != nil:
		output += "Failed: " + s.err.Error() + "\n"
	case s.done:
		output += "Done.\n"
	case s.status.Label == "":
		output += "Starting...\n"
	default:
		ratio := s.status.Ratio()
		output += fmt.Sprintf("%s %3.0f%% %s\n", Bar(ratio, BarWidth), ratio*100, s.status.Label)
	}
	return output
}
