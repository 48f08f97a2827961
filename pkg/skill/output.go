package skill

// Status describes the outcome of a single skill execution.
type Status string

const (
	// StatusSuccess indicates the skill completed fully
	StatusSuccess Status = "success"

	// StatusFailure indicates the skill failed
	StatusFailure Status = "failure"

	// StatusPartial indicates the skill completed with degraded results
	StatusPartial Status = "partial"

	// StatusSkipped indicates the skill did not run
	StatusSkipped Status = "skipped"
)

// Input carries everything a skill sees for one invocation.
type Input struct {
	// Data is the working data, threaded from previous skills in the phase
	Data map[string]interface{}

	// Context is accumulated workflow context from earlier phases
	Context map[string]interface{}

	// Config is the configuration snapshot for this skill
	Config map[string]interface{}
}

// Output is the result of one skill execution.
//
// Invariant: Success=true implies Status is StatusSuccess or StatusPartial.
type Output struct {
	// Success indicates whether the execution succeeded overall
	Success bool

	// Status is the fine-grained outcome
	Status Status

	// Data contains produced values, keyed for downstream skills
	Data map[string]interface{}

	// Artifacts lists paths of files or directories produced
	Artifacts []string

	// Errors contains error messages from the execution
	Errors []string

	// Warnings contains non-fatal messages
	Warnings []string

	// Metadata contains execution metadata (skill identity, stage, timing)
	Metadata map[string]interface{}
}

// NewOutput returns an empty successful output.
func NewOutput() *Output {
	return &Output{
		Success:  true,
		Status:   StatusSuccess,
		Data:     make(map[string]interface{}),
		Metadata: make(map[string]interface{}),
	}
}

// NewFailure returns a failure output carrying the given error messages.
func NewFailure(errs ...string) *Output {
	return &Output{
		Success:  false,
		Status:   StatusFailure,
		Data:     make(map[string]interface{}),
		Errors:   errs,
		Metadata: make(map[string]interface{}),
	}
}

// SetMeta sets a metadata key, allocating the map if needed.
func (o *Output) SetMeta(key string, value interface{}) {
	if o.Metadata == nil {
		o.Metadata = make(map[string]interface{})
	}
	o.Metadata[key] = value
}
