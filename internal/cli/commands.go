package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/invoker"
	"github.com/deployctl/deployctl/internal/output"
	"github.com/deployctl/deployctl/internal/project"
	"github.com/deployctl/deployctl/internal/runner"
	"github.com/deployctl/deployctl/internal/service"
	"github.com/deployctl/deployctl/internal/state"
	"github.com/deployctl/deployctl/internal/target"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	helpFlagWidthShort  = 10 // Width for short flags like "-h, --help"
	helpFlagWidthGlobal = 18 // Width for global flags like "--param <key>=<val>"
)

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the appropriate
// exit code on failure.
func loadProject(opts *GlobalOptions) (*project.Project, int) {
	var proj *project.Project
	var err error

	if opts.Dir != "" {
		var root string
		root, err = project.FindRootFrom(opts.Dir)
		if err == nil {
			proj, err = project.LoadProjectFrom(root)
		}
	} else {
		proj, err = project.LoadProject()
	}

	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}

	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}
	return proj, 0
}

// loadRegistry builds the target registry, reporting errors uniformly.
func loadRegistry(proj *project.Project) (*target.Registry, int) {
	reg, err := target.NewRegistry(proj.Config)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}
	return reg, 0
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so child
// processes get a chance to stop before the CLI exits.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseRunArgs extracts the target name, --param overrides, and --dry-run.
func parseRunArgs(args []string) (string, map[string]string, bool, error) {
	var targetName string
	dryRun := false
	params := make(map[string]string)

	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "--dry-run":
			dryRun = true
			i++
		case arg == "--param":
			if i+1 >= len(args) {
				return "", nil, false, fmt.Errorf("--param requires a <key>=<value> argument")
			}
			key, value, ok := strings.Cut(args[i+1], "=")
			if !ok || key == "" {
				return "", nil, false, fmt.Errorf("invalid --param %q; expected <key>=<value>", args[i+1])
			}
			params[key] = value
			i += 2
		case strings.HasPrefix(arg, "--param="):
			key, value, ok := strings.Cut(strings.TrimPrefix(arg, "--param="), "=")
			if !ok || key == "" {
				return "", nil, false, fmt.Errorf("invalid --param %q; expected <key>=<value>", arg)
			}
			params[key] = value
			i++
		case strings.HasPrefix(arg, "-"):
			return "", nil, false, fmt.Errorf("unknown flag %q", arg)
		default:
			if targetName != "" {
				return "", nil, false, fmt.Errorf("unexpected argument %q; run takes a single target", arg)
			}
			targetName = arg
			i++
		}
	}

	if targetName == "" {
		return "", nil, false, fmt.Errorf("target name required")
	}
	return targetName, params, dryRun, nil
}

// cmdRun executes a target and its dependencies.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRunUsage()
		return 0
	}

	targetName, params, dryRun, err := parseRunArgs(args)
	if err != nil {
		out.ErrorPrefix("run: %v", err)
		return errors.ExitConfigError
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	reg, code := loadRegistry(proj)
	if reg == nil {
		return code
	}

	if dryRun {
		return printPlan(reg, targetName)
	}

	ctx, stop := signalContext()
	defer stop()

	inv := invoker.New()
	mgr := service.NewManager(inv, proj.Config.Project.Name)
	r := runner.New(proj, reg, inv, mgr, out, params)

	if _, err := r.Run(ctx, targetName); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return 0
}

// cmdPlan prints the execution order for a target without running it.
func cmdPlan(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printPlanUsage()
		return 0
	}
	if len(args) != 1 {
		out.ErrorPrefix("plan: target name required")
		return errors.ExitConfigError
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	reg, code := loadRegistry(proj)
	if reg == nil {
		return code
	}

	return printPlan(reg, args[0])
}

// printPlan renders the resolved execution order without running anything.
func printPlan(reg *target.Registry, targetName string) int {
	plan, err := reg.Resolve(targetName)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	out.DryRunStart()
	for i, t := range plan {
		out.Println("  %d. %s", i+1, t.Name)
		for _, step := range t.Steps {
			out.Verbose("       %s", step)
		}
	}

	if services := target.ServicesFor(plan); len(services) > 0 {
		out.Section("Required services")
		out.List(services)
	}
	return 0
}

// cmdTargets lists all configured targets.
func cmdTargets(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printTargetsUsage()
		return 0
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	reg, code := loadRegistry(proj)
	if reg == nil {
		return code
	}

	for _, t := range reg.All() {
		out.TargetInfo(t.Name, t.Description)
		if len(t.DependsOn) > 0 {
			out.TargetDetail("depends on", strings.Join(t.DependsOn, ", "))
		}
		if len(t.Services) > 0 {
			out.TargetDetail("services", strings.Join(t.Services, ", "))
		}
	}
	return 0
}

// cmdStatus shows the outcome of the most recent run.
func cmdStatus(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printStatusUsage()
		return 0
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}

	latest, err := state.LatestRun(proj.RunsDir())
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}
	if latest == nil {
		out.Println("no runs recorded")
		return 0
	}

	out.SummaryHeader("Run " + latest.RunID)
	out.SummaryItem("Target", latest.Target)
	out.SummaryItem("Started", latest.StartedAt.Local().Format("2006-01-02 15:04:05"))
	for _, rec := range latest.Records {
		switch rec.Status {
		case state.StatusSucceeded:
			out.SummaryAction(rec.Name, true, rec.Duration.String(), "")
		case state.StatusFailed:
			out.SummaryAction(rec.Name, false, rec.Duration.String(), rec.Error)
		default:
			out.SummarySkipped(rec.Name)
		}
	}
	return 0
}

// cmdConfig handles config subcommands.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}

	reg, code := loadRegistry(proj)
	if reg == nil {
		return code
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("Project", proj.Config.Project.Name)
	out.SummaryItem("Targets", fmt.Sprintf("%d", len(reg.Names())))
	out.SummaryItem("Services", fmt.Sprintf("%d", len(proj.Config.Services)))
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return 0
}
