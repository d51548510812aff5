package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"ytapi/internal/progress"
)

type jobState struct {
	id     string
	url    string
	stage  progress.Stage
	status string
	err    error
	done   bool

	outputPath string
	bytes      int64
	percent    float64 // -1 means unknown
	speed      string

	spinner spinner.Model
	bar     bubblesprogress.Model

	started bool

	// Recent extractor stderr, shown when the job fails.
	logsRing []string
}

const maxLogLines = 200

func newJobState(id, url string, styles Styles) *jobState {
	sp := spinner.New()
	sp.Style = styles.Spinner
	bar := bubblesprogress.New(
		bubblesprogress.WithDefaultGradient(),
		bubblesprogress.WithWidth(40),
	)
	return &jobState{
		id:      id,
		url:     url,
		stage:   progress.StageValidating,
		status:  "Queued",
		percent: -1,
		spinner: sp,
		bar:     bar,
	}
}

func (js *jobState) appendLog(line string) {
	if len(js.logsRing) >= maxLogLines {
		js.logsRing = js.logsRing[1:]
	}
	js.logsRing = append(js.logsRing, line)
}

func (js *jobState) lastLog() string {
	if len(js.logsRing) == 0 {
		return ""
	}
	return js.logsRing[len(js.logsRing)-1]
}
