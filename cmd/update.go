package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"seq-metadata/core/config"
	"seq-metadata/core/database"
	"seq-metadata/core/logger"
	"seq-metadata/core/obstore"
	"seq-metadata/feature/illumina"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var includeControls bool

// updateCmd updates secondary metadata and permissions on stored paths.
var updateCmd = &cobra.Command{
	Use:   "update-secondary-metadata",
	Short: "Update secondary metadata and permissions from the ML warehouse",
	Long: `Update secondary metadata and permissions on Illumina run data objects
and collections to match the ML warehouse.

Paths are read from STDIN, one per line; paths whose state changed are
printed to STDOUT. A path that fails to update is reported and does not stop
the remaining paths from being processed.

Examples:
  # Update a single path
  echo /seq/24338/24338_1.cram | seq-metadata update-secondary-metadata

  # Update everything that changed since a checkpoint
  seq-metadata changed --since 2024-01-01T00:00:00Z | locate-objects | \
    seq-metadata update-secondary-metadata`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&includeControls, "include-controls", false,
		"Include spiked-in control samples in metadata and permissions")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := obstore.NewClient(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}

	numProcessed, numUpdated, numFailed := 0, 0, 0

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		path := scanner.Text()
		if path == "" {
			continue
		}
		numProcessed++

		updated, err := illumina.EnsureSecondaryMetadataUpdated(ctx, client, db, l, path, includeControls)
		if err != nil {
			numFailed++
			l.Error("Failed to update", zap.String("path", path), zap.Error(err))
			continue
		}
		if updated {
			numUpdated++
			fmt.Println(path)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read paths: %w", err)
	}

	l.Info("Update complete",
		zap.Int("num_processed", numProcessed),
		zap.Int("num_updated", numUpdated),
		zap.Int("num_failed", numFailed))

	if numFailed > 0 {
		return fmt.Errorf("%d of %d paths failed to update", numFailed, numProcessed)
	}
	return nil
}
