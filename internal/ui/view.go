package ui

import (
	"fmt"
	"strings"

	"ytapi/internal/progress"
)

func (m Model) viewHeader() string {
	done, total := 0, len(m.jobOrder)
	for _, id := range m.jobOrder {
		if m.jobs[id].done {
			done++
		}
	}
	title := m.styles.Title.Render("ytapi fetch")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Jobs: %d/%d done • q: quit", done, total))
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	var b strings.Builder
	for _, id := range m.jobOrder {
		b.WriteString(m.viewJob(m.jobs[id]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) stageStyle(st progress.Stage) func(...string) string {
	switch st {
	case progress.StageValidating, progress.StageFetchingMetadata, progress.StageSelectingFormat:
		return m.styles.StageMeta.Render
	case progress.StageExtracting, progress.StageLocatingOutput:
		return m.styles.StageDL.Render
	case progress.StageStreaming, progress.StageCleanup:
		return m.styles.StageSave.Render
	case progress.StageCompleted:
		return m.styles.Success.Render
	case progress.StageError:
		return m.styles.Error.Render
	}
	return m.styles.JobInfo.Render
}

func (m Model) viewJob(js *jobState) string {
	left := m.styles.JobTitle.Render(truncate(js.url, 48))
	stage := m.stageStyle(js.stage)(string(js.stage))

	var right string
	switch {
	case js.done && js.err == nil:
		right = m.styles.Success.Render("✓ done")
	case js.err != nil:
		right = m.styles.Error.Render("✗ error")
	case js.percent >= 0 && js.percent <= 100:
		right = fmt.Sprintf("%s %5.1f%%", js.bar.ViewAs(js.percent/100.0), js.percent)
		if js.speed != "" {
			right += " " + m.styles.Faint.Render(js.speed)
		}
	case !js.started:
		right = m.styles.Faint.Render("queued")
	default:
		right = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render("working")
	}

	info := m.styles.JobInfo.Render(js.status)
	if js.err != nil {
		if last := js.lastLog(); last != "" {
			info += "\n" + m.styles.Faint.Render(truncate(last, 80))
		}
	}
	line1 := fmt.Sprintf("%s  %s", left, stage)
	return m.styles.Box.Render(line1 + "\n" + right + "\n" + info)
}

func (m Model) viewSummary() string {
	var completed []string
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done && js.err == nil && js.outputPath != "" {
			completed = append(completed, js.outputPath)
		}
	}
	if len(completed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("✓ Completed Files:"))
	b.WriteString("\n")
	for _, path := range completed {
		b.WriteString(m.styles.Success.Render("  • " + path))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
