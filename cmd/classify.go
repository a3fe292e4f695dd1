package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scorandini/fcr-cli/internal/channelmap"
	"github.com/scorandini/fcr-cli/internal/dataset"
	"github.com/scorandini/fcr-cli/internal/export"
	"github.com/scorandini/fcr-cli/internal/model"
	"github.com/scorandini/fcr-cli/internal/pipeline"
	"github.com/scorandini/fcr-cli/internal/report"
	"github.com/scorandini/fcr-cli/internal/store"
)

var (
	classifyInteractions string
	classifyReference    string
	classifyChannelMap   string
	classifyOutput       string
	classifyFormat       string
	classifySave         bool
	classifyMonth        string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Run the FCR classification pipeline",
	Long: `Loads the interactions and FCR reference tables (local .xlsx/.csv
files or http(s)/ftp URLs), runs the classification pipeline, and writes
the classified output table.

Examples:
  # Local spreadsheets, CSV output
  fcr-cli classify --interactions base_3meses.xlsx --reference fcr.xlsx --output classified.csv

  # Remote inputs, persist the batch to the configured store
  fcr-cli classify \
    --interactions https://github.com/acme/cs-data/raw/main/base_3meses.xlsx \
    --reference    https://github.com/acme/cs-data/raw/main/fcr.xlsx \
    --save

  # Print a month summary without writing anything
  fcr-cli classify --interactions base.xlsx --reference fcr.xlsx --month 2025-02`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		interactionsSrc := classifyInteractions
		if interactionsSrc == "" {
			interactionsSrc = cfg.Inputs.Interactions
		}
		referenceSrc := classifyReference
		if referenceSrc == "" {
			referenceSrc = cfg.Inputs.Reference
		}
		if interactionsSrc == "" || referenceSrc == "" {
			return eris.New("classify: both --interactions and --reference sources are required")
		}

		channelMapPath := classifyChannelMap
		if channelMapPath == "" {
			channelMapPath = cfg.Inputs.ChannelMap
		}
		channels, err := channelmap.Load(channelMapPath)
		if err != nil {
			return eris.Wrap(err, "classify: load channel map")
		}

		loader := dataset.NewLoader(cfg.Inputs.TempDir)

		// The two source tables are independent; load them concurrently.
		var (
			interactions []model.InteractionRecord
			refs         []model.ReferenceRecord
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			interactions, err = loader.LoadInteractions(gctx, interactionsSrc)
			return err
		})
		g.Go(func() error {
			var err error
			refs, err = loader.LoadReferences(gctx, referenceSrc)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "classify: load inputs")
		}

		records := pipeline.Classify(interactions, refs, channels)

		if classifyOutput != "" {
			switch classifyFormat {
			case "csv":
				err = export.WriteCSVFile(classifyOutput, records)
			case "xlsx":
				err = export.WriteXLSXFile(classifyOutput, records)
			default:
				return eris.Errorf("classify: unknown output format %q (want csv or xlsx)", classifyFormat)
			}
			if err != nil {
				return eris.Wrap(err, "classify: write output")
			}
			fmt.Printf("Wrote %d classified records to %s\n", len(records), classifyOutput)
		}

		if classifySave {
			st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				return eris.Wrap(err, "classify: open store")
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "classify: migrate store")
			}

			batch := model.Batch{
				ID:                 uuid.New().String(),
				InteractionsSource: interactionsSrc,
				ReferenceSource:    referenceSrc,
				RecordCount:        len(records),
				CreatedAt:          time.Now().UTC(),
			}
			if err := st.SaveBatch(ctx, batch, records); err != nil {
				return eris.Wrap(err, "classify: save batch")
			}
			zap.L().Info("classify: batch saved",
				zap.String("batch_id", batch.ID),
				zap.Int("records", batch.RecordCount),
			)
			fmt.Printf("Saved batch %s (%d records)\n", batch.ID, batch.RecordCount)
		}

		if classifyMonth != "" {
			printMonthSummary(records, classifyMonth)
		}

		return nil
	},
}

func printMonthSummary(records []model.ClassifiedRecord, month string) {
	monthly := report.FilterMonth(records, month)
	fmt.Printf("\nMonth %s: %d records\n", month, len(monthly))
	for _, row := range report.StatusBreakdown(monthly) {
		fmt.Printf("  fcr_status %-4s %d\n", row.Value, row.Count)
	}
}

func init() {
	classifyCmd.Flags().StringVar(&classifyInteractions, "interactions", "", "interactions table (path or URL, .xlsx/.csv)")
	classifyCmd.Flags().StringVar(&classifyReference, "reference", "", "FCR reference table (path or URL, .xlsx/.csv)")
	classifyCmd.Flags().StringVar(&classifyChannelMap, "channel-map", "", "channel mapping YAML (default from config)")
	classifyCmd.Flags().StringVar(&classifyOutput, "output", "", "output file for the classified table")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "csv", "output format: csv or xlsx")
	classifyCmd.Flags().BoolVar(&classifySave, "save", false, "persist the batch to the configured store")
	classifyCmd.Flags().StringVar(&classifyMonth, "month", "", "print a summary for this service month (YYYY-MM)")
	rootCmd.AddCommand(classifyCmd)
}
