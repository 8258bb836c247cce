// Package deployctl provides public constants for external tools
// integrating with deployctl.
package deployctl

// Exit codes returned by the deployctl CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (failing target, tool failure, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, unknown target, cycle).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (docker unavailable, missing dependency, etc.).
	ExitEnvError = 3
)
