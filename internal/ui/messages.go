package ui

import (
	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/internal/analysis"
)

// StageMsg reports a stage event from the running job.
type StageMsg struct {
	Event effectchain.Event
}

// DoneMsg indicates the job has finished.
type DoneMsg struct {
	OutputPath string
	Comparison *analysis.Comparison // nil when the output was not analysed
	Err        error
}
