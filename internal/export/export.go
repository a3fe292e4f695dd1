// Package export writes the classified output table to CSV and XLSX and
// reads it back for reporting. The CSV schema is the contract between the
// pipeline and the presentation layer.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/scorandini/fcr-cli/internal/model"
)

// dateLayout is the serialization format for timestamps in exports.
const dateLayout = "2006-01-02 15:04:05"

// Columns is the output table schema: every input column followed by
// every derived column, in stable order.
var Columns = []string{
	"topic", "category", "subject", "channel_slug", "subtype", "outcome",
	"channel_order_code", "branded_store_slug", "reason",
	"service_date", "due_date",
	"topic_key", "allowed_interactions", "buyer_interaction",
	"days_over_sla", "sla_breach", "fcr_eligible", "canonical_channel",
	"grouping_key", "sequence_index", "fcr_status", "service_month",
}

// row flattens a classified record into the column order of Columns.
func row(r model.ClassifiedRecord) []string {
	return []string{
		r.Topic, r.Category, r.Subject, r.ChannelSlug, r.Subtype, r.Outcome,
		r.ChannelOrderCode, r.BrandedStoreSlug, r.Reason,
		formatDate(r.ServiceDate), formatDate(r.DueDate),
		r.TopicKey, strconv.Itoa(r.AllowedInteractions), strconv.FormatBool(r.BuyerInteraction),
		formatIntPtr(r.DaysOverSLA), strconv.FormatBool(r.SLABreach), strconv.FormatBool(r.FCREligible), r.CanonicalChannel,
		r.GroupingKey, strconv.Itoa(r.SequenceIndex), r.FCRStatus, r.ServiceMonth,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// WriteCSV writes the classified table as CSV.
func WriteCSV(w io.Writer, records []model.ClassifiedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteCSVFile writes the classified table to a CSV file.
func WriteCSVFile(path string, records []model.ClassifiedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close() //nolint:errcheck
	return WriteCSV(f, records)
}

// WriteXLSXFile writes the classified table to an XLSX file.
func WriteXLSXFile(path string, records []model.ClassifiedRecord) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("classified")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Columns {
		header.AddCell().SetString(col)
	}
	for _, r := range records {
		xr := sheet.AddRow()
		for _, v := range row(r) {
			xr.AddCell().SetString(v)
		}
	}

	return eris.Wrap(f.Save(path), "export: save xlsx")
}
