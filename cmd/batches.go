package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scorandini/fcr-cli/internal/store"
)

var batchesLimit int

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List persisted classification batches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return eris.Wrap(err, "batches: open store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "batches: migrate store")
		}

		batches, err := st.ListBatches(ctx, batchesLimit)
		if err != nil {
			return eris.Wrap(err, "batches: list")
		}
		if len(batches) == 0 {
			fmt.Fprintln(os.Stderr, "No batches found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRECORDS\tCREATED\tINTERACTIONS\tREFERENCE")
		for _, b := range batches {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				b.ID, b.RecordCount, b.CreatedAt.Format("2006-01-02 15:04"),
				b.InteractionsSource, b.ReferenceSource,
			)
		}
		return eris.Wrap(w.Flush(), "batches: flush output")
	},
}

func init() {
	batchesCmd.Flags().IntVar(&batchesLimit, "limit", 50, "maximum batches to list")
	rootCmd.AddCommand(batchesCmd)
}
