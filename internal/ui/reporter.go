package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ytapi/internal/progress"
)

// jobReporter forwards service events into the program, tagged with the
// UI's job id rather than the service's artifact id.
type jobReporter struct {
	id   string
	ch   chan tea.Msg
	done <-chan struct{} // closed once the program stops reading ch
}

func (r jobReporter) Update(u progress.Update) {
	u.JobID = r.id
	// Block on terminal messages to ensure they're delivered
	if u.Stage.Terminal() {
		r.send(jobUpdateMsg{u})
		return
	}
	select {
	case r.ch <- jobUpdateMsg{u}:
	default:
	}
}

func (r jobReporter) Log(l progress.Log) {
	l.JobID = r.id
	select {
	case r.ch <- jobLogMsg{l}:
	default:
	}
}

func (r jobReporter) Result(res progress.Result) {
	res.JobID = r.id
	// Always block on Result messages - they're critical
	r.send(jobResultMsg{res})
}

func (r jobReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.done:
	}
}
