// Package exitcodes defines the process exit codes reported by reclaim.
package exitcodes

const (
	// Success means the command completed without errors.
	Success = 0

	// GeneralError covers unexpected runtime failures.
	GeneralError = 1

	// UsageError means the command line was invalid.
	UsageError = 2

	// ConfigError means the configuration could not be loaded or validated.
	ConfigError = 3

	// CleanupError means at least one removal failed during a clean run.
	CleanupError = 4
)
