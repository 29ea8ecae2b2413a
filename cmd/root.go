package cmd

import (
	"fmt"
	"os"

	"seq-metadata/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "seq-metadata",
	Short: "Sequencing metadata reconciliation",
	Long: `seq-metadata reconciles identity and access-control metadata on
sequencing run outputs in the object store against the ML warehouse, and
exports product location records for bulk loading back into the warehouse.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting. Console
		// format with debug level gives ISO8601 timestamps, matching what a
		// CLI user expects.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
