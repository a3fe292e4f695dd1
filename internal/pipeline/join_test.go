package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorandini/fcr-cli/internal/model"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDerive_ReferenceMatch(t *testing.T) {
	refIndex := map[string]int{"entregaatrasopedido": 3}
	rec := model.InteractionRecord{Topic: "Entrega", Category: "Atraso", Subject: "Pedido"}

	cr := Derive(rec, refIndex)

	assert.Equal(t, "entregaatrasopedido", cr.TopicKey)
	assert.Equal(t, 3, cr.AllowedInteractions)
}

func TestDerive_NoReferenceMatch_DefaultsToOne(t *testing.T) {
	rec := model.InteractionRecord{Topic: "Algo", Category: "Novo", Subject: "Aqui"}

	cr := Derive(rec, map[string]int{})

	assert.Equal(t, model.DefaultAllowedInteractions, cr.AllowedInteractions)
}

func TestDerive_BuyerInteraction(t *testing.T) {
	buyer := Derive(model.InteractionRecord{Outcome: model.BuyerOutcome}, nil)
	assert.True(t, buyer.BuyerInteraction)

	other := Derive(model.InteractionRecord{Outcome: "Sem resposta"}, nil)
	assert.False(t, other.BuyerInteraction)
}

func TestDerive_DaysOverSLA(t *testing.T) {
	tests := []struct {
		name         string
		service      *time.Time
		due          *time.Time
		expectedDays *int
		breach       bool
	}{
		{
			// Service three days before the due date: negative delta flags
			// the breach under the inherited sign convention.
			name:         "service before due date",
			service:      datePtr(2025, time.February, 10),
			due:          datePtr(2025, time.February, 13),
			expectedDays: intPtr(-3),
			breach:       true,
		},
		{
			name:         "service after due date",
			service:      datePtr(2025, time.February, 15),
			due:          datePtr(2025, time.February, 13),
			expectedDays: intPtr(2),
			breach:       false,
		},
		{
			name:         "same day",
			service:      datePtr(2025, time.February, 13),
			due:          datePtr(2025, time.February, 13),
			expectedDays: intPtr(0),
			breach:       false,
		},
		{
			name:    "missing service date",
			service: nil,
			due:     datePtr(2025, time.February, 13),
		},
		{
			name:    "missing due date",
			service: datePtr(2025, time.February, 13),
			due:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := Derive(model.InteractionRecord{ServiceDate: tt.service, DueDate: tt.due}, nil)
			if tt.expectedDays == nil {
				assert.Nil(t, cr.DaysOverSLA)
			} else {
				require.NotNil(t, cr.DaysOverSLA)
				assert.Equal(t, *tt.expectedDays, *cr.DaysOverSLA)
			}
			assert.Equal(t, tt.breach, cr.SLABreach)
		})
	}
}

func TestDerive_SLADeltaFloorsRawTimestamps(t *testing.T) {
	tests := []struct {
		name         string
		service      time.Time
		due          time.Time
		expectedDays int
		breach       bool
	}{
		{
			// Same calendar day, service hours before the due timestamp:
			// the partial day floors to -1 and the breach flag raises.
			name:         "same day, service earlier",
			service:      time.Date(2025, time.February, 10, 10, 0, 0, 0, time.UTC),
			due:          time.Date(2025, time.February, 10, 23, 0, 0, 0, time.UTC),
			expectedDays: -1,
			breach:       true,
		},
		{
			name:         "same day, service later",
			service:      time.Date(2025, time.February, 10, 23, 0, 0, 0, time.UTC),
			due:          time.Date(2025, time.February, 10, 10, 0, 0, 0, time.UTC),
			expectedDays: 0,
			breach:       false,
		},
		{
			name:         "minutes before a midnight due date",
			service:      time.Date(2025, time.February, 10, 23, 30, 0, 0, time.UTC),
			due:          time.Date(2025, time.February, 11, 0, 15, 0, 0, time.UTC),
			expectedDays: -1,
			breach:       true,
		},
		{
			// One day and change late floors down to a single whole day.
			name:         "partial day late",
			service:      time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC),
			due:          time.Date(2025, time.February, 13, 20, 0, 0, 0, time.UTC),
			expectedDays: 1,
			breach:       false,
		},
		{
			name:         "one day and change early",
			service:      time.Date(2025, time.February, 10, 1, 0, 0, 0, time.UTC),
			due:          time.Date(2025, time.February, 11, 23, 0, 0, 0, time.UTC),
			expectedDays: -2,
			breach:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := Derive(model.InteractionRecord{ServiceDate: &tt.service, DueDate: &tt.due}, nil)

			require.NotNil(t, cr.DaysOverSLA)
			assert.Equal(t, tt.expectedDays, *cr.DaysOverSLA)
			assert.Equal(t, tt.breach, cr.SLABreach)
		})
	}
}

func TestDerive_ServiceMonth(t *testing.T) {
	withDate := Derive(model.InteractionRecord{ServiceDate: datePtr(2025, time.February, 7)}, nil)
	assert.Equal(t, "2025-02", withDate.ServiceMonth)

	withoutDate := Derive(model.InteractionRecord{}, nil)
	assert.Empty(t, withoutDate.ServiceMonth)
}

func intPtr(v int) *int { return &v }
