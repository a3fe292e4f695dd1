package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntOr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		def  int
		want int
	}{
		{name: "plain integer", in: "3", def: 1, want: 3},
		{name: "decimal formatted integer", in: "2.0", def: 1, want: 2},
		{name: "surrounding whitespace", in: " 4 ", def: 1, want: 4},
		{name: "empty falls back", in: "", def: 1, want: 1},
		{name: "garbage falls back", in: "muitas", def: 1, want: 1},
		{name: "negative passes through", in: "-1", def: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIntOr(tt.in, tt.def))
		})
	}
}

func TestParseDateOrNil(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "datetime",
			in:   "2025-02-03 14:22:01",
			want: time.Date(2025, 2, 3, 14, 22, 1, 0, time.UTC),
		},
		{
			name: "iso datetime",
			in:   "2025-02-03T14:22:01",
			want: time.Date(2025, 2, 3, 14, 22, 1, 0, time.UTC),
		},
		{
			name: "date only",
			in:   "2025-02-03",
			want: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "brazilian date",
			in:   "03/02/2025",
			want: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "excel serial",
			in:   "45691",
			want: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateOrNil(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseDateOrNil_NoValue(t *testing.T) {
	assert.Nil(t, parseDateOrNil(""))
	assert.Nil(t, parseDateOrNil("   "))
	assert.Nil(t, parseDateOrNil("not a date"))
	assert.Nil(t, parseDateOrNil("-12"))
}

func TestGetColN(t *testing.T) {
	colIdx := mapColumnsNormalized([]string{" Topic ", "CATEGORY"})

	assert.Equal(t, "Entrega", getColN([]string{"Entrega", "Atraso"}, colIdx, "topic"))
	assert.Equal(t, "Atraso", getColN([]string{"Entrega", "Atraso"}, colIdx, "Category"))
	assert.Equal(t, "", getColN([]string{"Entrega", "Atraso"}, colIdx, "subject"))
	// Short row: the column exists in the header but not in this record.
	assert.Equal(t, "", getColN([]string{"Entrega"}, colIdx, "category"))
}
