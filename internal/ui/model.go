package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ytapi/internal/model"
	"ytapi/internal/pipeline"
	"ytapi/internal/progress"
	"ytapi/internal/util/format"
)

// Options configures a fetch session.
type Options struct {
	Type    model.MediaType
	Quality string
	OutDir  string
	Jobs    int

	// NewService builds the orchestrator for one job around its reporter.
	NewService func(progress.Reporter) *pipeline.Service
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	urls     []string
	opts     Options
	jobOrder []string
	jobs     map[string]*jobState
	workers  int
	running  int
	next     int // next index in urls to start

	width, height int
	styles        Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg

	// Fetches still running; Run waits for them so cleanup completes.
	inflight *inflight
}

func NewModel(ctx context.Context, urls []string, opts Options) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(urls))
	order := make([]string, 0, len(urls))
	for i, u := range urls {
		id := "job-" + strconv.Itoa(i)
		jobs[id] = newJobState(id, u, sty)
		order = append(order, id)
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = 1
	}

	return Model{
		ctx:      c,
		cancel:   cancel,
		urls:     urls,
		opts:     opts,
		jobs:     jobs,
		jobOrder: order,
		workers:  workers,
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
		inflight: &inflight{},
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		cmds = append(cmds, m.jobs[id].spinner.Tick)
	}
	cmds = append(cmds, m.listenEventsCmd(), func() tea.Msg { return startJobsMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case startJobsMsg:
		cmd := m.startNext()
		return m, cmd

	case jobUpdateMsg:
		u := msg.Update
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			if u.Percent >= 0 || u.Stage != progress.StageExtracting {
				js.percent = u.Percent
			}
			if u.Message != "" {
				js.status = u.Message
			}
			if u.Speed != nil {
				js.speed = *u.Speed
			}
			if u.Bytes != nil {
				js.bytes = *u.Bytes
			}
		}
		return m, m.listenEventsCmd()

	case jobLogMsg:
		l := msg.Log
		if js, ok := m.jobs[l.JobID]; ok {
			js.appendLog(strings.TrimRight(l.Line, "\r\n"))
		}
		return m, m.listenEventsCmd()

	case jobResultMsg:
		r := msg.Result
		js, ok := m.jobs[r.JobID]
		if !ok || js.done {
			return m, m.listenEventsCmd()
		}
		js.done = true
		js.err = r.Err
		if r.Err == nil {
			js.stage = progress.StageCompleted
			js.percent = 100
			js.outputPath = r.OutputPath
			js.bytes = r.Bytes
			js.status = fmt.Sprintf("Saved: %s (%s)", filepath.Base(r.OutputPath), format.HumanizeBytes(r.Bytes))
		} else {
			js.stage = progress.StageError
			js.status = r.Err.Error()
			js.percent = -1
		}
		m.running--
		cmd := m.startNext()
		return m, tea.Batch(cmd, m.listenEventsCmd())

	case allDoneMsg:
		return m, tea.Quit
	}

	// Update per-job components (spinner)
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// startNext launches queued jobs up to the worker limit and reports
// allDoneMsg once nothing is queued or running.
func (m *Model) startNext() tea.Cmd {
	if m.ctx.Err() != nil {
		return func() tea.Msg { return allDoneMsg{} }
	}
	var cmds []tea.Cmd
	for m.running < m.workers && m.next < len(m.urls) {
		jobID := m.jobOrder[m.next]
		url := m.urls[m.next]
		m.next++
		m.running++
		if js := m.jobs[jobID]; js != nil {
			js.started = true
			js.status = "Starting"
		}
		cmds = append(cmds, m.runJobCmd(jobID, url))
	}
	if m.next >= len(m.urls) && m.running == 0 {
		return func() tea.Msg { return allDoneMsg{} }
	}
	return tea.Batch(cmds...)
}

func (m Model) runJobCmd(jobID, url string) tea.Cmd {
	svc := m.opts.NewService(jobReporter{id: jobID, ch: m.eventCh, done: m.ctx.Done()})
	req := model.DownloadRequest{URL: url, Type: m.opts.Type, Quality: m.opts.Quality}
	ctx, outDir, track := m.ctx, m.opts.OutDir, m.inflight
	return func() tea.Msg {
		if !track.begin() {
			return nil
		}
		defer track.done()
		// Outcome arrives through the reporter as a jobResultMsg.
		_, _, _ = svc.Fetch(ctx, req, outDir)
		return nil
	}
}

// shutdown cancels running fetches and blocks until each has cleaned up.
func (m Model) shutdown() {
	m.cancel()
	m.inflight.closeAndWait()
}

// inflight counts running fetches. Once closed it refuses new ones, so a
// command the program never got to run cannot start after the wait.
type inflight struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func (f *inflight) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.wg.Add(1)
	return true
}

func (f *inflight) done() { f.wg.Done() }

func (f *inflight) closeAndWait() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.wg.Wait()
}
