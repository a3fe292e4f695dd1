package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scorandini/fcr-cli/internal/export"
	"github.com/scorandini/fcr-cli/internal/model"
	"github.com/scorandini/fcr-cli/internal/report"
)

var (
	reportInput  string
	reportMonth  string
	reportStatus string
	reportFormat string
)

// reportFields are the dimensions broken down by the report command, in
// display order.
var reportFields = []string{"topic", "category", "subject"}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate a classified table for one service month",
	Long: `Reads a classified CSV produced by classify and prints the reporting
aggregations: value counts per topic/category/subject, the daily record
series, and the FCR status breakdown.

Examples:
  fcr-cli report --input classified.csv --month 2025-02
  fcr-cli report --input classified.csv --month 2025-02 --status Não
  fcr-cli report --input classified.csv --month 2025-02 --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := export.ReadCSVFile(reportInput)
		if err != nil {
			return eris.Wrap(err, "report: read classified table")
		}

		monthly := report.FilterMonth(records, reportMonth)
		if reportStatus != "" {
			monthly = report.FilterStatus(monthly, reportStatus)
		}

		if reportFormat == "json" {
			return printReportJSON(monthly, reportMonth)
		}
		return printReportText(monthly, reportMonth)
	},
}

type reportPayload struct {
	Month           string                       `json:"month"`
	Total           int                          `json:"total"`
	Values          map[string][]report.CountRow `json:"values"`
	Daily           []report.DayCount            `json:"daily"`
	StatusBreakdown []report.CountRow            `json:"status_breakdown"`
}

func buildReportPayload(records []model.ClassifiedRecord, month string) (reportPayload, error) {
	payload := reportPayload{
		Month:           month,
		Total:           len(records),
		Values:          make(map[string][]report.CountRow, len(reportFields)),
		Daily:           report.DailySeries(records),
		StatusBreakdown: report.StatusBreakdown(records),
	}
	for _, field := range reportFields {
		extract, err := report.FieldSelector(field)
		if err != nil {
			return payload, err
		}
		payload.Values[field] = report.ValueCounts(records, extract)
	}
	return payload, nil
}

func printReportJSON(records []model.ClassifiedRecord, month string) error {
	payload, err := buildReportPayload(records, month)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(payload), "report: encode json")
}

func printReportText(records []model.ClassifiedRecord, month string) error {
	payload, err := buildReportPayload(records, month)
	if err != nil {
		return err
	}

	fmt.Printf("Month %s: %d records\n", payload.Month, payload.Total)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, field := range reportFields {
		fmt.Fprintf(w, "\n%s\tcount\n", field)
		for _, row := range payload.Values[field] {
			label := row.Value
			if label == "" {
				label = "(empty)"
			}
			fmt.Fprintf(w, "%s\t%d\n", label, row.Count)
		}
	}

	fmt.Fprintf(w, "\nfcr_status\tcount\n")
	for _, row := range payload.StatusBreakdown {
		fmt.Fprintf(w, "%s\t%d\n", row.Value, row.Count)
	}

	fmt.Fprintf(w, "\nday\tcount\n")
	for _, dc := range payload.Daily {
		fmt.Fprintf(w, "%s\t%d\n", dc.Day, dc.Count)
	}

	return eris.Wrap(w.Flush(), "report: flush output")
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "classified CSV produced by classify")
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "service month to report on (YYYY-MM)")
	reportCmd.Flags().StringVar(&reportStatus, "status", "", "restrict to one fcr_status value (e.g. Não)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or json")
	_ = reportCmd.MarkFlagRequired("input")
	_ = reportCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(reportCmd)
}
