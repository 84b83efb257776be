package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pnpkit/internal/logger"
	"github.com/joshuapare/pnpkit/pkg/devclass"
	"github.com/joshuapare/pnpkit/pkg/devnode"
	"github.com/joshuapare/pnpkit/pkg/devnotify"
	"github.com/joshuapare/pnpkit/pkg/types"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	logDir      string
	logLevel    string
	classesFile string
	modeFlag    string
)

var (
	// newLocator and newListener build the library entry points; tests swap
	// them for fakes.
	newLocator  = func() *devnode.Locator { return devnode.NewLocator() }
	newListener = func() *devnotify.Listener { return devnotify.New() }

	classes = devclass.Builtin()
)

var rootCmd = &cobra.Command{
	Use:   "devnodectl",
	Short: "Inspect and control Windows device nodes",
	Long: `devnodectl resolves device nodes by instance id or interface path,
reads and writes their properties, restarts or removes them, classifies
whether they were enumerated by software, and watches interface arrivals
and removals.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		StringVar(&classesFile, "classes", "", "YAML file mapping class aliases to GUIDs")
}

// setup configures logging and class aliases before any command runs.
func setup(*cobra.Command, []string) error {
	opts := logger.Options{Level: logger.ParseLevel(logLevel)}
	switch {
	case logDir != "":
		opts.Enabled = true
		opts.LogDir = logDir
	case verbose:
		opts.Enabled = true
		opts.Writer = os.Stderr
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if classesFile != "" {
		a, err := devclass.LoadAliases(classesFile)
		if err != nil {
			return err
		}
		classes = a
	}
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addModeFlag registers --mode on cmd.
func addModeFlag(cmd *cobra.Command) {
	cmd.Flags().
		StringVar(&modeFlag, "mode", "normal", "Search mode (normal, phantom, cancelremove)")
}

// resolveNode locates id under the --mode flag.
func resolveNode(id string) (*devnode.Node, error) {
	mode, err := types.ParseSearchMode(modeFlag)
	if err != nil {
		return nil, err
	}
	printVerbose("Resolving %s (mode %s)\n", id, mode)
	n, err := newLocator().ResolveByInstanceID(id, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device: %w", err)
	}
	return n, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
