package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferences(t *testing.T) {
	rows := [][]string{
		{"TemaCategoriaAssunto", "Interacoes"},
		{"entregaatrasopedido", "2"},
		{"cadastrosenhaacesso", ""},
		{"pagamentoestornopedido", "3.0"},
	}

	records, err := ParseReferences(rows)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "entregaatrasopedido", records[0].TopicKey)
	assert.Equal(t, 2, records[0].AllowedInteractions)

	// Missing count falls back to the default threshold.
	assert.Equal(t, 1, records[1].AllowedInteractions)

	// Spreadsheet decimal formatting.
	assert.Equal(t, 3, records[2].AllowedInteractions)
}

func TestParseReferences_PreservesRowOrder(t *testing.T) {
	rows := [][]string{
		{"temacategoriaassunto", "interacoes"},
		{"entregaatrasopedido", "2"},
		{"entregaatrasopedido", "5"},
	}

	records, err := ParseReferences(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Duplicates are kept here; downstream dedup relies on source order.
	assert.Equal(t, 2, records[0].AllowedInteractions)
	assert.Equal(t, 5, records[1].AllowedInteractions)
}

func TestParseReferences_MissingKeyColumn(t *testing.T) {
	rows := [][]string{
		{"interacoes"},
		{"2"},
	}

	_, err := ParseReferences(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temacategoriaassunto")
}

func TestParseReferences_EmptyTable(t *testing.T) {
	_, err := ParseReferences(nil)
	assert.Error(t, err)
}

func TestParseReferences_MissingCountColumn(t *testing.T) {
	rows := [][]string{
		{"temacategoriaassunto"},
		{"entregaatrasopedido"},
	}

	records, err := ParseReferences(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].AllowedInteractions)
}
