package ui

import "ytapi/internal/progress"

// Messages delivered to the program. Reporter events are re-tagged with
// the UI job id before they are wrapped.
type (
	startJobsMsg struct{}
	allDoneMsg   struct{}

	jobUpdateMsg struct{ progress.Update }
	jobLogMsg    struct{ progress.Log }
	jobResultMsg struct{ progress.Result }
)
