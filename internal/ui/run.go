package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the TUI for urls and blocks until every job finished or the
// user quit. It returns only after every started fetch has cleaned up, with
// an error listing the jobs that failed.
func Run(ctx context.Context, urls []string, opts Options) error {
	m := NewModel(ctx, urls, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	// Quitting leaves fetches mid-flight; let them sweep their files.
	m.shutdown()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.failures()
	}
	return nil
}

func (m Model) failures() error {
	var failed []string
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js != nil && js.err != nil {
			failed = append(failed, fmt.Sprintf("- %s: %s", js.url, js.err.Error()))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d job(s) failed:\n%s", len(failed), strings.Join(failed, "\n"))
	}
	return nil
}
