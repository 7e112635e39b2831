package workflow

import (
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/generation"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
)

// Phase is the current phase of the generation workflow.
type Phase int

const (
	// Idle is the initial phase; nothing has been requested.
	Idle Phase = iota
	// Requesting means a generation is outstanding.
	Requesting
	// Succeeded means the latest generation produced a result.
	Succeeded
	// Failed means the latest generation failed.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the workflow. Result is set only when Succeeded,
// Err only when Failed.
type State struct {
	Phase  Phase
	Seq    uint64
	Result *models.GenerationResult
	Err    error
}

// Reason returns the user-facing failure message, or "" unless Failed.
func (s State) Reason() string {
	if s.Phase != Failed {
		return ""
	}
	return generation.UserMessage(s.Err)
}
