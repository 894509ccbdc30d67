// Package ui provides the Bubbletea progress view of mms process.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/internal/analysis"
)

// StageStatus is the state of one stage row.
type StageStatus int

const (
	StatusQueued StageStatus = iota
	StatusRunning
	StatusComplete
	StatusError
)

// StageProgress tracks one stage.
type StageProgress struct {
	ID      string
	Status  StageStatus
	Elapsed time.Duration
	Err     error
}

// Model is the Bubbletea model for a single processing job.
type Model struct {
	Input  string
	Output string
	Stages []StageProgress

	StartTime  time.Time
	Done       bool
	Cancelled  bool
	Err        error
	Comparison *analysis.Comparison

	Width int
}

// NewModel creates a model for a job over input with the given stage ids.
func NewModel(input string, stageIDs []string) Model {
	stages := make([]StageProgress, len(stageIDs))
	for i, id := range stageIDs {
		stages[i] = StageProgress{ID: id}
	}

	return Model{
		Input:     input,
		Stages:    stages,
		StartTime: time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.Done {
				m.Cancelled = true
			}

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case StageMsg:
		m.Stages = applyEvent(m.Stages, msg.Event)

	case DoneMsg:
		m.Done = true
		m.Output = msg.OutputPath
		m.Err = msg.Err
		m.Comparison = msg.Comparison

		return m, tea.Quit
	}

	return m, nil
}

// applyEvent updates the row the event names. Rows are copied so earlier
// models stay unchanged.
func applyEvent(stages []StageProgress, ev effectchain.Event) []StageProgress {
	if ev.Index < 0 || ev.Index >= len(stages) {
		return stages
	}

	out := append([]StageProgress(nil), stages...)
	s := &out[ev.Index]

	switch ev.Phase {
	case effectchain.StageStarted:
		s.Status = StatusRunning
	case effectchain.StageFinished:
		s.Status = StatusComplete
		s.Elapsed = ev.Elapsed
	case effectchain.StageFailed:
		s.Status = StatusError
		s.Elapsed = ev.Elapsed
		s.Err = ev.Err
	}

	return out
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderSummary(m)
	}

	return renderProgress(m)
}
