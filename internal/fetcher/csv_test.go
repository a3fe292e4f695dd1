package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "topic,category\nEntrega,Atraso\nCadastro,Senha\n"

	rows, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"topic", "category"},
		{"Entrega", "Atraso"},
		{"Cadastro", "Senha"},
	}, rows)
}

func TestReadCSV_VaryingFieldCounts(t *testing.T) {
	in := "a,b,c\n1,2\n1,2,3,4\n"

	rows, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestReadCSV_Options(t *testing.T) {
	in := "# export 2025-02\na;b\n1;\"quoted\n"

	rows, err := ReadCSV(strings.NewReader(in), CSVOptions{
		Delimiter:  ';',
		Comment:    '#',
		LazyQuotes: true,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestReadCSV_MalformedQuotes(t *testing.T) {
	in := "a,b\n1,\"bad\n"

	_, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	assert.Error(t, err)
}
