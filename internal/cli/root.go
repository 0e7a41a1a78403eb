package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/reclaimtools/reclaim/internal/config"
	"github.com/reclaimtools/reclaim/internal/exitcodes"
	"github.com/reclaimtools/reclaim/internal/ui"
	"github.com/spf13/cobra"
)

// App is the dependency container for all CLI commands.
type App struct {
	rootCmd *cobra.Command
	version string
	commit  string
	date    string
	output  *ui.Output

	configPath string
	debug      bool
	noColor    bool
}

// NewApp creates the root command and registers all subcommands.
func NewApp(version, commit, date string) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		output:  ui.NewOutput(),
	}

	root := &cobra.Command{
		Use:   "reclaim",
		Short: "Reclaim disk space from stale build and cache directories",
		Long:  "Finds build outputs, IDE caches and package manager caches that have not been used recently, shows how much space they hold, and removes the ones you approve.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envPath := os.Getenv("RECLAIM_CONFIG"); envPath != "" && app.configPath == "" {
				app.configPath = envPath
			}
			if os.Getenv("RECLAIM_DEBUG") != "" {
				app.debug = true
			}
			if app.noColor || os.Getenv("RECLAIM_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
				app.output.SetNoColor(true)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (overrides RECLAIM_CONFIG)")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&app.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		app.newScanCmd(),
		app.newCleanCmd(),
		app.newReviewCmd(),
		app.newRulesCmd(),
		app.newDiskCmd(),
		app.newHistoryCmd(),
		app.newInitCmd(),
		app.newVersionCmd(),
	)

	app.rootCmd = root
	return app
}

// ExecuteContext runs the root command. The context cancels the scan and
// deletion pipelines on SIGINT and SIGTERM.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// configFile returns the effective config file path.
func (a *App) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.Path()
}

// loadConfig reads the config file. A missing file yields the defaults.
func (a *App) loadConfig(home string) (*config.Config, error) {
	path, err := a.configFile()
	if err != nil {
		return nil, &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}
	cfg, err := config.Load(path, home)
	if err != nil {
		return nil, &ExitError{
			Code:    exitcodes.ConfigError,
			Message: fmt.Sprintf("%s: %v", path, err),
		}
	}
	a.debugf("config: %s", path)
	return cfg, nil
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			a.output.Info("reclaim %s (commit: %s, built: %s)", a.version, a.commit, a.date)
		},
	}
}

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// debugf prints a debug message if debug mode is enabled.
func (a *App) debugf(format string, args ...interface{}) {
	if a.debug {
		a.output.Debug(format, args...)
	}
}
