// Package cli implements the compactsheet command-line interface.
//
// # Commands
//
//   - geometry: print the page geometry a configuration produces
//   - validate: check a configuration against the compact bounds
//   - distribute: lay content units out into columns
//   - serve: run the JSON HTTP API
//   - completion: generate shell completion scripts
//
// Every layout command accepts a --config file (TOML or JSON) and flags such
// as --columns or --font-size that override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/pkg/buildinfo"
	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/distribute"
	"github.com/matzehuels/compactsheet/pkg/engine"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "compactsheet"

	defaultAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Compactsheet lays out dense multi-column reference sheets",
		Long:         `Compactsheet arranges headings, formulas, definitions, lists and text into the columns of a single compact page, estimating heights from typography and balancing the columns.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.geometryCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.distributeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// newEngine builds an engine for CLI use with logging hooks attached.
func (c *CLI) newEngine(p config.Partial, policy distribute.Policy) (*engine.Engine, error) {
	return engine.New(p,
		engine.WithLogger(c.Logger),
		engine.WithPolicy(policy),
		engine.WithHooks(newLogHooks(c.Logger)),
	)
}
