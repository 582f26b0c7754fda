package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grit/internal/logging"
)

// rootCmd defines the base command for the grit CLI.
// All subcommands (init, hash-object, commit, etc.) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "grit",
	Short: "A content-addressable object store in the spirit of Git",
	Long: `Grit persists immutable, hash-identified objects (blobs, trees, commits)
under a .grit directory and reconstructs directory snapshots from recursive
tree objects. Object ids are deterministic: identical content always hashes
to the identical id, independent of traversal order.`,
	PersistentPreRunE: setupLogging,
}

var logLevel string

// logger is shared by all subcommands; setupLogging replaces the nop
// default before any RunE executes.
var logger = zap.NewNop()

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log verbosity (debug, info, warn, error)")
}

// setupLogging builds the shared zap logger from the --log-level flag.
func setupLogging(cmd *cobra.Command, args []string) error {
	built, err := logging.New(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = built
	zap.ReplaceGlobals(built)
	return nil
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
