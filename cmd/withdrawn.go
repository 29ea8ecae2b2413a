package cmd

import (
	"fmt"

	"seq-metadata/core/config"
	"seq-metadata/core/database"
	"seq-metadata/core/logger"
	"seq-metadata/core/mlwh"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withdrawnCmd lists samples whose consent has been withdrawn.
var withdrawnCmd = &cobra.Command{
	Use:   "withdrawn",
	Short: "List samples with consent withdrawn",
	Long: `List all samples in the ML warehouse marked as having their consent
withdrawn. Sanger sample IDs are printed to STDOUT, one per line.`,
	RunE: runWithdrawn,
}

func init() {
	RootCmd.AddCommand(withdrawnCmd)
}

func runWithdrawn(cmd *cobra.Command, args []string) error {
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

	samples, err := mlwh.FindConsentWithdrawnSamples(db)
	if err != nil {
		return fmt.Errorf("consent withdrawn query failed: %w", err)
	}

	for _, sample := range samples {
		if sample.SangerSampleID != nil {
			fmt.Println(*sample.SangerSampleID)
		}
	}

	l.Info("Consent withdrawn scan complete", zap.Int("num_samples", len(samples)))
	return nil
}
