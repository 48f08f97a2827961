package skill

import (
	"context"
	"fmt"
	"log"
)

// Metadata keys set by Run on every output.
const (
	MetaSkillID      = "skill_id"
	MetaSkillVersion = "skill_version"
	MetaStage        = "stage"
	MetaErrorKind    = "error_kind"
)

// Stages recorded under MetaStage when Run produces a failure output.
const (
	StageValidation = "validation"
	StageExecution  = "execution"
)

// Run executes a skill through the fixed protocol:
//
//  1. Initialize, when the skill implements Initializer.
//  2. Validate; a validation failure produces a failure output tagged
//     stage=validation and Execute is not called.
//  3. Execute; a returned error or a panic is converted into a failure
//     output tagged stage=execution with the error kind in metadata.
//  4. Merge the skill's identity and version into the output metadata.
//  5. Cleanup is attempted on every exit path; a cleanup error is logged
//     and never overrides the primary result.
//
// Run never panics and never returns nil.
func Run(ctx context.Context, s Skill, input *Input) *Output {
	if input == nil {
		input = &Input{}
	}

	out := run(ctx, s, input)

	// Attach skill identity regardless of outcome
	out.SetMeta(MetaSkillID, s.ID())
	out.SetMeta(MetaSkillVersion, s.Version())

	// Best-effort cleanup on every exit path
	if f, ok := s.(Finalizer); ok {
		runCleanup(ctx, f, s.ID())
	}

	return out
}

// runCleanup invokes Cleanup with its own panic boundary. A cleanup
// failure, returned or panicked, is logged and never overrides the
// primary result.
func runCleanup(ctx context.Context, f Finalizer, id string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("skill %s: cleanup panicked: %v", id, r)
		}
	}()

	if err := f.Cleanup(ctx); err != nil {
		log.Printf("skill %s: cleanup failed: %v", id, err)
	}
}

func run(ctx context.Context, s Skill, input *Input) (out *Output) {
	// Convert any panic from Initialize, Validate or Execute into a
	// failure output; nothing escapes this boundary.
	defer func() {
		if r := recover(); r != nil {
			out = NewFailure(fmt.Sprintf("skill %s panicked: %v", s.ID(), r))
			out.SetMeta(MetaStage, StageExecution)
			out.SetMeta(MetaErrorKind, "panic")
		}
	}()

	if init, ok := s.(Initializer); ok {
		if err := init.Initialize(ctx); err != nil {
			out = NewFailure(fmt.Sprintf("skill %s: initialization failed: %v", s.ID(), err))
			out.SetMeta(MetaStage, StageExecution)
			out.SetMeta(MetaErrorKind, fmt.Sprintf("%T", err))
			return out
		}
	}

	if ok, problems := s.Validate(input); !ok {
		if len(problems) == 0 {
			problems = []string{fmt.Sprintf("skill %s: input validation failed", s.ID())}
		}
		out = NewFailure(problems...)
		out.SetMeta(MetaStage, StageValidation)
		return out
	}

	result, err := s.Execute(ctx, input)
	if err != nil {
		out = NewFailure(fmt.Sprintf("skill %s: execution failed: %v", s.ID(), err))
		out.SetMeta(MetaStage, StageExecution)
		out.SetMeta(MetaErrorKind, fmt.Sprintf("%T", err))
		return out
	}
	if result == nil {
		result = NewOutput()
	}

	// Enforce the success/status invariant on the way out
	if result.Success && result.Status != StatusSuccess && result.Status != StatusPartial {
		result.Status = StatusSuccess
	}

	return result
}
