package pipeline

import "fmt"

// Stage identifies one step of the generation-and-publication pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidate Stage = "validate"
	StageCompose  Stage = "compose"
	StageGenerate Stage = "generate"
	StageName     Stage = "name"
	StagePersist  Stage = "persist"
	StagePublish  Stage = "publish"
)

// StageError annotates a stage failure with the stage that produced it, so
// the HTTP boundary can report kind, message, and failed stage instead of a
// generic fault.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
