// Package fetcher downloads the two source tables over HTTP or FTP and
// parses XLSX and CSV files into raw rows for the dataset package.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads remote source tables.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path.
	// Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}
