package dataset

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/fetcher"
	"github.com/scorandini/fcr-cli/internal/model"
)

// Loader resolves input table sources: local paths, http(s):// URLs, or
// ftp:// URLs, in .xlsx or .csv format. Remote files are downloaded to a
// temp directory before parsing (XLSX needs a seekable file anyway).
type Loader struct {
	HTTP    fetcher.Fetcher
	FTP     fetcher.Fetcher
	TempDir string
}

// NewLoader builds a Loader with default fetchers.
func NewLoader(tempDir string) *Loader {
	return &Loader{
		HTTP:    fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		FTP:     fetcher.NewFTPFetcher(fetcher.FTPOptions{}),
		TempDir: tempDir,
	}
}

// LoadInteractions loads and parses the interactions table from source.
func (l *Loader) LoadInteractions(ctx context.Context, source string) ([]model.InteractionRecord, error) {
	rows, err := l.loadRows(ctx, source)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load interactions from %s", source)
	}
	return ParseInteractions(rows)
}

// LoadReferences loads and parses the FCR reference table from source.
func (l *Loader) LoadReferences(ctx context.Context, source string) ([]model.ReferenceRecord, error) {
	rows, err := l.loadRows(ctx, source)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load reference table from %s", source)
	}
	return ParseReferences(rows)
}

func (l *Loader) loadRows(ctx context.Context, source string) ([][]string, error) {
	local, err := l.localize(ctx, source)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(local)) {
	case ".xlsx":
		return fetcher.ReadXLSX(local, fetcher.XLSXOptions{})
	case ".csv":
		f, err := os.Open(local)
		if err != nil {
			return nil, eris.Wrap(err, "open csv")
		}
		defer f.Close() //nolint:errcheck
		return fetcher.ReadCSV(f, fetcher.CSVOptions{LazyQuotes: true})
	default:
		return nil, eris.Errorf("unsupported input format %q (want .xlsx or .csv)", filepath.Ext(local))
	}
}

// localize returns a local file path for the source, downloading it first
// when the source is a URL.
func (l *Loader) localize(ctx context.Context, source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		return strings.TrimPrefix(source, "file://"), nil
	}

	var f fetcher.Fetcher
	switch u.Scheme {
	case "http", "https":
		f = l.HTTP
	case "ftp":
		f = l.FTP
	default:
		return "", eris.Errorf("unsupported url scheme %q", u.Scheme)
	}

	dir := l.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "create temp dir")
	}

	dest := filepath.Join(dir, path.Base(u.Path))
	n, err := f.DownloadToFile(ctx, source, dest)
	if err != nil {
		return "", err
	}
	zap.L().Info("dataset: downloaded source table",
		zap.String("url", source),
		zap.String("path", dest),
		zap.Int64("bytes", n),
	)
	return dest, nil
}
