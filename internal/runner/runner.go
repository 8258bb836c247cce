// Package runner executes deployment plans: it resolves a target's
// dependency order, brings required services up, and runs each target's
// shell steps sequentially, aborting at the first failure.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/invoker"
	"github.com/deployctl/deployctl/internal/output"
	"github.com/deployctl/deployctl/internal/project"
	"github.com/deployctl/deployctl/internal/service"
	"github.com/deployctl/deployctl/internal/state"
	"github.com/deployctl/deployctl/internal/target"
)

// Executor runs a shell step, streaming its output while capturing it.
// Satisfied by *invoker.Invoker.
type Executor interface {
	Stream(ctx context.Context, inv invoker.Invocation) (*invoker.Result, error)
}

// ServiceManager brings the services a plan depends on into the running
// state. Satisfied by *service.Manager.
type ServiceManager interface {
	CheckDockerAvailable(ctx context.Context) error
	RunOrStart(ctx context.Context, svc service.Service) (service.Status, error)
}

// Runner executes targets for one project.
type Runner struct {
	project  *project.Project
	registry *target.Registry
	exec     Executor
	services ServiceManager
	out      *output.Writer
	params   map[string]string
	clock    func() time.Time
}

// New creates a Runner for a loaded project.
func New(p *project.Project, reg *target.Registry, exec Executor, services ServiceManager, out *output.Writer, params map[string]string) *Runner {
	return &Runner{
		project:  p,
		registry: reg,
		exec:     exec,
		services: services,
		out:      out,
		params:   params,
		clock:    time.Now,
	}
}

// Plan returns the execution order for a target without running anything.
func (r *Runner) Plan(name string) ([]*target.Target, error) {
	return r.registry.Resolve(name)
}

// Run executes a target and its dependencies in topological order. Targets
// run one at a time; the first failure aborts the run and leaves the
// remaining targets pending. The run record is persisted regardless of
// outcome.
func (r *Runner) Run(ctx context.Context, name string) (*state.RunRecord, error) {
	plan, err := r.registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(plan))
	for _, t := range plan {
		names = append(names, t.Name)
	}

	startedAt := r.clock()
	store := state.NewStore(state.NewRunID(startedAt), names)

	runErr := r.ensureServices(ctx, plan)
	if runErr == nil {
		runErr = r.runTargets(ctx, plan, store, store.RunID)
	}

	rec := &state.RunRecord{
		RunID:      store.RunID,
		Target:     name,
		StartedAt:  startedAt,
		FinishedAt: r.clock(),
		Success:    runErr == nil,
		Records:    store.Records(),
	}

	if _, err := state.Save(r.project.RunsDir(), rec); err != nil {
		r.out.Warning("failed to persist run record: %v", err)
	}

	r.printSummary(rec)
	return rec, runErr
}

// ensureServices starts every service the plan requires, in first-use order.
func (r *Runner) ensureServices(ctx context.Context, plan []*target.Target) error {
	required := target.ServicesFor(plan)
	if len(required) == 0 {
		return nil
	}

	if err := r.services.CheckDockerAvailable(ctx); err != nil {
		return err
	}

	for _, name := range required {
		cfg, ok := r.project.Config.Services[name]
		if !ok {
			return errors.Configf("service %q is not defined", name)
		}

		r.out.Verbose("ensuring service %s is running", name)
		if _, err := r.services.RunOrStart(ctx, service.FromConfig(name, cfg)); err != nil {
			return err
		}
	}
	return nil
}

// runTargets executes the plan sequentially, recording state transitions.
func (r *Runner) runTargets(ctx context.Context, plan []*target.Target, store *state.Store, runID string) error {
	for _, t := range plan {
		if err := ctx.Err(); err != nil {
			store.Fail(t.Name, "interrupted")
			return errors.New("run interrupted")
		}

		if err := store.Start(t.Name); err != nil {
			return err
		}
		r.out.TargetStart(t.Name)

		if err := r.runTarget(ctx, t, runID); err != nil {
			store.Fail(t.Name, err.Error())
			r.out.TargetFailed(t.Name, err)
			return errors.TargetError(t.Name, "target failed", err)
		}

		store.Succeed(t.Name)
		r.out.TargetSuccess(t.Name, formatDuration(store.Get(t.Name).Duration))
	}
	return nil
}

// runTarget executes a single target's shell steps in order.
func (r *Runner) runTarget(ctx context.Context, t *target.Target, runID string) error {
	vars := r.buildVars(t, runID)
	dir := filepath.Join(r.project.Root, t.Cwd)

	env := make(map[string]string, len(t.Env))
	for k, v := range t.Env {
		env[k] = interpolate(v, vars)
	}

	for _, step := range t.Steps {
		cmdStr := interpolate(step, vars)
		r.out.Command(cmdStr)

		res, err := r.exec.Stream(ctx, invoker.ShellStep(cmdStr, dir, env))
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return errors.ToolFailure(cmdStr, res.ExitCode, res.Stderr)
		}
	}
	return nil
}

// buildVars assembles the interpolation variables for a target.
// Precedence, lowest to highest: built-ins, project params, CLI params,
// target vars.
func (r *Runner) buildVars(t *target.Target, runID string) map[string]string {
	vars := map[string]string{
		"target":  t.Name,
		"root":    r.project.Root,
		"project": r.project.Config.Project.Name,
		"run_id":  runID,
	}
	for k, v := range r.project.Config.Params {
		vars[k] = v
	}
	for k, v := range r.params {
		vars[k] = v
	}
	for k, v := range t.Vars {
		vars[k] = v
	}
	return vars
}

// printSummary renders the per-target outcome table after a run.
func (r *Runner) printSummary(rec *state.RunRecord) {
	r.out.SummaryHeader("Run " + rec.RunID)
	for _, t := range rec.Records {
		switch t.Status {
		case state.StatusSucceeded:
			r.out.SummaryAction(t.Name, true, formatDuration(t.Duration), "")
		case state.StatusFailed:
			r.out.SummaryAction(t.Name, false, formatDuration(t.Duration), t.Error)
		default:
			r.out.SummarySkipped(t.Name)
		}
	}

	if rec.Success {
		r.out.FinalSuccess("target %s completed in %s", rec.Target, formatDuration(rec.FinishedAt.Sub(rec.StartedAt)))
	} else {
		r.out.FinalFailure("target %s failed", rec.Target)
	}
}

// formatDuration renders a duration with sub-second precision trimmed.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
