package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slideforge/slideforge/pkg/checkpoint"
	"github.com/slideforge/slideforge/pkg/registry"
	"github.com/slideforge/slideforge/pkg/skill"
	"github.com/slideforge/slideforge/pkg/tracing"
)

// DefaultMaxPhaseRetries bounds how many times a Retry decision may
// re-run the same phase within one call.
const DefaultMaxPhaseRetries = 1

// Orchestrator is the top-level pipeline driver. The registry is an
// injected value; the orchestrator holds no hidden process-wide state.
type Orchestrator struct {
	registry    *registry.Registry
	engine      checkpoint.Engine
	phaseSkills map[Phase][]string
	skillConfig map[string]map[string]interface{}

	// modifications is the runtime config overlay built from Retry
	// feedback; it applies to every skill instantiated afterwards
	modifications map[string]interface{}

	maxRetries int
	statePath  string
	hooks      Hooks
}

// NewOrchestrator creates an orchestrator over the given registry with
// the reference phase/skill mapping and auto-approving checkpoints.
func NewOrchestrator(reg *registry.Registry) *Orchestrator {
	return &Orchestrator{
		registry:      reg,
		engine:        checkpoint.NewAutoEngine(true),
		phaseSkills:   DefaultPhaseSkills(),
		skillConfig:   make(map[string]map[string]interface{}),
		modifications: make(map[string]interface{}),
		maxRetries:    DefaultMaxPhaseRetries,
		hooks:         &DefaultHooks{},
	}
}

// WithCheckpointEngine sets the checkpoint engine.
func (o *Orchestrator) WithCheckpointEngine(engine checkpoint.Engine) *Orchestrator {
	o.engine = engine
	return o
}

// WithPhaseSkills sets the skill-id list for a phase.
func (o *Orchestrator) WithPhaseSkills(phase Phase, ids ...string) *Orchestrator {
	o.phaseSkills[phase] = ids
	return o
}

// WithSkillConfig sets the configuration snapshot for a skill id.
func (o *Orchestrator) WithSkillConfig(id string, config map[string]interface{}) *Orchestrator {
	o.skillConfig[id] = config
	return o
}

// WithMaxPhaseRetries bounds Retry re-runs per phase.
func (o *Orchestrator) WithMaxPhaseRetries(n int) *Orchestrator {
	if n >= 0 {
		o.maxRetries = n
	}
	return o
}

// WithStatePath enables state persistence at the given file path.
func (o *Orchestrator) WithStatePath(path string) *Orchestrator {
	o.statePath = path
	return o
}

// WithHooks sets lifecycle hooks for runs.
func (o *Orchestrator) WithHooks(hooks Hooks) *Orchestrator {
	o.hooks = hooks
	return o
}

// Execute runs the full phase sequence with checkpoints between phases.
// Skill and phase errors are reported through the result, never as a
// returned error; the error return covers host-level problems only
// (hook failures).
func (o *Orchestrator) Execute(ctx context.Context, input map[string]interface{}) (*WorkflowResult, error) {
	return o.executeFrom(ctx, PhaseResearch, input)
}

func (o *Orchestrator) executeFrom(ctx context.Context, start Phase, input map[string]interface{}) (*WorkflowResult, error) {
	started := time.Now()
	res := &WorkflowResult{
		WorkflowID: uuid.NewString(),
		Metadata:   make(map[string]interface{}),
	}

	wfContext := cloneMap(input)

	if err := o.hooks.OnWorkflowStart(ctx, res.WorkflowID, input); err != nil {
		return nil, fmt.Errorf("workflow start hook error: %w", err)
	}
	tracing.WorkflowStart(ctx, res.WorkflowID, phaseNames(Phases()[start:]))

	for _, phase := range Phases()[int(start):] {
		if err := o.hooks.OnPhaseStart(ctx, phase); err != nil {
			return nil, fmt.Errorf("phase start hook error: %w", err)
		}

		pr, decision, err := o.runPhaseWithCheckpoint(ctx, phase, wfContext, res)
		if err != nil {
			return nil, err
		}

		if !pr.Success {
			// A failing phase stops the run without a checkpoint
			res.Metadata["failed_phase"] = phase.String()
			return o.finish(ctx, res, started, false), nil
		}

		switch decision.Decision {
		case checkpoint.Continue:
			mergeMaps(wfContext, pr.CombinedData())

		case checkpoint.Modify:
			res.Paused = true
			res.Metadata["paused_phase"] = phase.String()
			if o.statePath != "" {
				if err := SaveState(res.WorkflowID, res.Phases, o.statePath); err != nil {
					res.Metadata["state_save_error"] = err.Error()
				} else {
					tracing.StateSaved(ctx, o.statePath)
				}
			}
			return o.finish(ctx, res, started, true), nil

		case checkpoint.Abort:
			res.Metadata["aborted_phase"] = phase.String()
			if decision.Feedback != "" {
				res.Metadata["abort_reason"] = decision.Feedback
			}
			return o.finish(ctx, res, started, false), nil
		}
	}

	return o.finish(ctx, res, started, true), nil
}

// runPhaseWithCheckpoint runs one phase, obtains its checkpoint decision,
// and applies the bounded retry policy: a Retry decision re-runs the
// phase (replacing its result) up to the configured limit; the final
// permitted re-run proceeds without a further checkpoint, and decisions
// past the limit degrade to Continue with a recorded warning.
func (o *Orchestrator) runPhaseWithCheckpoint(ctx context.Context, phase Phase, wfContext map[string]interface{}, res *WorkflowResult) (*PhaseResult, *checkpoint.Result, error) {
	retries := 0
	checkpointNext := true
	slot := len(res.Phases)
	res.Phases = append(res.Phases, nil)

	for {
		pr := o.runPhase(ctx, phase, wfContext)
		res.Phases[slot] = pr

		if err := o.hooks.OnPhaseEnd(ctx, phase, pr); err != nil {
			return nil, nil, fmt.Errorf("phase end hook error: %w", err)
		}

		if !pr.Success {
			return pr, &checkpoint.Result{Decision: checkpoint.Abort}, nil
		}
		if !checkpointNext {
			return pr, &checkpoint.Result{Decision: checkpoint.Continue}, nil
		}

		decision, err := o.engine.Decide(ctx, o.checkpointRequest(phase, pr))
		if err != nil {
			// An unreadable checkpoint cannot approve anything; abort.
			decision = &checkpoint.Result{
				Decision: checkpoint.Abort,
				Feedback: fmt.Sprintf("checkpoint failed: %v", err),
			}
		}
		tracing.Checkpoint(ctx, phase.String(), string(decision.Decision), decision.Feedback)
		if err := o.hooks.OnCheckpoint(ctx, phase, decision); err != nil {
			return nil, nil, fmt.Errorf("checkpoint hook error: %w", err)
		}

		if decision.Decision != checkpoint.Retry {
			return pr, decision, nil
		}

		if retries >= o.maxRetries {
			pr.Warnings = append(pr.Warnings, fmt.Sprintf("retry limit (%d) reached for %s phase; continuing", o.maxRetries, phase))
			return pr, &checkpoint.Result{Decision: checkpoint.Continue}, nil
		}

		retries++
		mergeMaps(o.modifications, decision.Modifications)
		if retries >= o.maxRetries {
			// The replacement run proceeds on an implicit Continue
			checkpointNext = false
		}
	}
}

// runPhase executes one phase's skills in sequence, threading each
// output's data into the next skill's input. Registration and
// instantiation problems are phase-level errors; the phase still attempts
// its remaining skills.
func (o *Orchestrator) runPhase(ctx context.Context, phase Phase, wfContext map[string]interface{}) *PhaseResult {
	pr := &PhaseResult{Phase: phase}
	ids := o.phaseSkills[phase]
	tracing.PhaseStart(ctx, phase.String(), ids)

	data := cloneMap(wfContext)
	for _, id := range ids {
		if !o.registry.IsRegistered(id) {
			msg := fmt.Sprintf("skill %q is not registered", id)
			pr.Errors = append(pr.Errors, msg)
			tracing.Error(ctx, phase.String(), msg, nil)
			continue
		}

		cfg := o.configFor(id)
		s, err := o.registry.Get(id, cfg)
		if err != nil {
			msg := fmt.Sprintf("failed to instantiate skill %q: %v", id, err)
			pr.Errors = append(pr.Errors, msg)
			tracing.Error(ctx, phase.String(), msg, err)
			continue
		}

		tracing.SkillStart(ctx, phase.String(), id)
		out := skill.Run(ctx, s, &skill.Input{
			Data:    data,
			Context: wfContext,
			Config:  cfg,
		})
		tracing.SkillResult(ctx, phase.String(), id, out.Success, string(out.Status), out.Artifacts)

		pr.Outputs = append(pr.Outputs, out)
		pr.Artifacts = append(pr.Artifacts, out.Artifacts...)

		// Pipeline-within-phase: outputs feed the next skill
		for k, v := range out.Data {
			data[k] = v
		}
	}

	pr.evaluate()
	tracing.PhaseEnd(ctx, phase.String(), pr.Success, pr.Errors)
	return pr
}

// configFor merges the static skill configuration with the runtime
// modifications overlay built from Retry feedback.
func (o *Orchestrator) configFor(id string) map[string]interface{} {
	cfg := cloneMap(o.skillConfig[id])
	mergeMaps(cfg, o.modifications)
	return cfg
}

func (o *Orchestrator) checkpointRequest(phase Phase, pr *PhaseResult) *checkpoint.Request {
	req := &checkpoint.Request{
		Phase:     phase.String(),
		Data:      pr.CombinedData(),
		Artifacts: pr.Artifacts,
	}

	skillErrors := 0
	for _, out := range pr.Outputs {
		skillErrors += len(out.Errors)
	}
	if skillErrors > 0 {
		req.Suggestions = append(req.Suggestions, fmt.Sprintf("%d error(s) occurred during the %s phase", skillErrors, phase))
	}
	return req
}

func (o *Orchestrator) finish(ctx context.Context, res *WorkflowResult, started time.Time, success bool) *WorkflowResult {
	res.Success = success
	res.Duration = time.Since(started)
	for _, pr := range res.Phases {
		if pr != nil {
			res.Artifacts = append(res.Artifacts, pr.Artifacts...)
		}
	}

	tracing.WorkflowEnd(ctx, res.WorkflowID, res.Success, res.Duration)
	if err := o.hooks.OnWorkflowEnd(ctx, res); err != nil {
		res.Metadata["workflow_end_hook_error"] = err.Error()
	}
	return res
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeMaps(dst map[string]interface{}, src map[string]interface{}) {
	for k, v := range src {
		dst[k] = v
	}
}

func phaseNames(phases []Phase) []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.String()
	}
	return names
}
