package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"titanicprep/adapters/excel"
	"titanicprep/adapters/filestore"
	"titanicprep/app"
	"titanicprep/domain/core"
	"titanicprep/internal"
	"titanicprep/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "titanicprep [input]",
		Short: "Clean, engineer and encode the Titanic passenger table",
		Long: `Reads the passenger table, removes duplicates, imputes Age, Embarked and Fare,
adds Title, FamilySize, IsAlone and quantile bins, one-hot encodes the categorical
columns, scales Age and Fare, then writes cleaned.csv and final_features.npy.

The input defaults to INPUT_PATH (data/train.csv); outputs go to OUTPUT_DIR (output).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if len(args) == 1 {
				cfg = cfg.WithInput(args[0])
			}
			_, err = run(cmd.Context(), cfg, stdout)
			return err
		},
	}
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer) (*app.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.NewLogger(cfg.Logging.Level)
	runID := core.NewRunID()

	store := filestore.NewStore(filestore.Options{
		OutputDir:  cfg.Paths.OutputDir,
		ExportXLSX: cfg.Output.ExportXLSX,
		RunID:      runID,
		Console:    stdout,
		Logger:     logger,
	})
	pipeline := app.NewPipeline(runID, excel.NewDataReader(logger), store, logger)

	return pipeline.Run(ctx, cfg.Paths.InputPath)
}
