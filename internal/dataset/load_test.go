package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interactionsCSV = `topic,category,subject,channel_slug,subtype,outcome,service_date,due_date
Entrega,Atraso,Pedido,mercadolivre,Mensageria,Interação com o buyer,2025-02-03 10:00:00,2025-02-05 00:00:00
Cadastro,Senha,Acesso,amazon,Reclamação,Resolvido internamente,2025-02-04,2025-02-06
`

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadInteractions_LocalCSV(t *testing.T) {
	path := writeTempCSV(t, "interactions.csv", interactionsCSV)
	l := NewLoader(t.TempDir())

	records, err := l.LoadInteractions(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Entrega", records[0].Topic)
	assert.Equal(t, "Interação com o buyer", records[0].Outcome)
}

func TestLoadInteractions_FileURL(t *testing.T) {
	path := writeTempCSV(t, "interactions.csv", interactionsCSV)
	l := NewLoader(t.TempDir())

	records, err := l.LoadInteractions(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadInteractions_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(interactionsCSV))
	}))
	defer srv.Close()

	l := NewLoader(t.TempDir())
	records, err := l.LoadInteractions(context.Background(), srv.URL+"/exports/interactions.csv")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadReferences_LocalCSV(t *testing.T) {
	path := writeTempCSV(t, "reference.csv", "temacategoriaassunto,interacoes\nentregaatrasopedido,2\n")
	l := NewLoader(t.TempDir())

	records, err := l.LoadReferences(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "entregaatrasopedido", records[0].TopicKey)
	assert.Equal(t, 2, records[0].AllowedInteractions)
}

func TestLoadRows_UnsupportedExtension(t *testing.T) {
	path := writeTempCSV(t, "interactions.txt", interactionsCSV)
	l := NewLoader(t.TempDir())

	_, err := l.LoadInteractions(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestLocalize_UnsupportedScheme(t *testing.T) {
	l := NewLoader(t.TempDir())

	_, err := l.localize(context.Background(), "gopher://example.com/data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported url scheme")
}

func TestLoadInteractions_MissingFile(t *testing.T) {
	l := NewLoader(t.TempDir())

	_, err := l.LoadInteractions(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
