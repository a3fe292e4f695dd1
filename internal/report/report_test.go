package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorandini/fcr-cli/internal/model"
)

func recordOn(day time.Time, topic, status string) model.ClassifiedRecord {
	return model.ClassifiedRecord{
		InteractionRecord: model.InteractionRecord{
			Topic:       topic,
			ServiceDate: &day,
		},
		FCRStatus:    status,
		ServiceMonth: day.Format("2006-01"),
	}
}

func reportRecords() []model.ClassifiedRecord {
	feb3 := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	feb3Later := time.Date(2025, 2, 3, 17, 30, 0, 0, time.UTC)
	feb4 := time.Date(2025, 2, 4, 11, 0, 0, 0, time.UTC)
	mar1 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	return []model.ClassifiedRecord{
		recordOn(feb3, "Entrega", model.FCRStatusResolved),
		recordOn(feb3Later, "Entrega", model.FCRStatusUnresolved),
		recordOn(feb4, "Cadastro", model.FCRStatusResolved),
		recordOn(mar1, "Entrega", model.FCRStatusResolved),
		// Ineligible record: never evaluated.
		recordOn(feb4, "Pagamento", model.FCRStatusNotEvaluated),
		// No service date, no service month.
		{InteractionRecord: model.InteractionRecord{Topic: "Entrega"}},
	}
}

func TestFilterMonth(t *testing.T) {
	feb := FilterMonth(reportRecords(), "2025-02")
	assert.Len(t, feb, 4)

	mar := FilterMonth(reportRecords(), "2025-03")
	assert.Len(t, mar, 1)

	assert.Empty(t, FilterMonth(reportRecords(), "2025-04"))
}

func TestFilterMonth_ExcludesRecordsWithoutServiceDate(t *testing.T) {
	for _, r := range FilterMonth(reportRecords(), "2025-02") {
		assert.NotNil(t, r.ServiceDate)
	}
}

func TestFilterStatus(t *testing.T) {
	feb := FilterMonth(reportRecords(), "2025-02")

	assert.Len(t, FilterStatus(feb, model.FCRStatusResolved), 2)
	assert.Len(t, FilterStatus(feb, model.FCRStatusUnresolved), 1)
	assert.Len(t, FilterStatus(feb, model.FCRStatusNotEvaluated), 1)
}

func TestMonths(t *testing.T) {
	assert.Equal(t, []string{"2025-02", "2025-03"}, Months(reportRecords()))
	assert.Empty(t, Months(nil))
}

func TestValueCounts(t *testing.T) {
	rows := ValueCounts(reportRecords(), func(r model.ClassifiedRecord) string { return r.Topic })

	require.Len(t, rows, 3)
	assert.Equal(t, CountRow{Value: "Entrega", Count: 4}, rows[0])
	// Equal counts tie-break by value ascending.
	assert.Equal(t, CountRow{Value: "Cadastro", Count: 1}, rows[1])
	assert.Equal(t, CountRow{Value: "Pagamento", Count: 1}, rows[2])
}

func TestFieldSelector(t *testing.T) {
	for _, name := range []string{"topic", "category", "subject", "canonical_channel"} {
		extract, err := FieldSelector(name)
		require.NoError(t, err, name)
		require.NotNil(t, extract, name)
	}

	_, err := FieldSelector("grouping_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "grouping_key"`)
}

func TestDailySeries(t *testing.T) {
	days := DailySeries(FilterMonth(reportRecords(), "2025-02"))

	// Two interactions on the 3rd collapse into one day bucket.
	assert.Equal(t, []DayCount{
		{Day: "2025-02-03", Count: 2},
		{Day: "2025-02-04", Count: 2},
	}, days)
}

func TestDailySeries_ExcludesRecordsWithoutServiceDate(t *testing.T) {
	days := DailySeries(reportRecords())
	total := 0
	for _, d := range days {
		total += d.Count
	}
	assert.Equal(t, 5, total)
}

func TestStatusBreakdown(t *testing.T) {
	rows := StatusBreakdown(FilterMonth(reportRecords(), "2025-02"))

	assert.Equal(t, []CountRow{
		{Value: model.FCRStatusResolved, Count: 2},
		{Value: model.FCRStatusUnresolved, Count: 1},
	}, rows)
}

func TestStatusBreakdown_OnlyNotEvaluated(t *testing.T) {
	records := []model.ClassifiedRecord{
		{FCRStatus: model.FCRStatusNotEvaluated},
	}
	assert.Empty(t, StatusBreakdown(records))
}
