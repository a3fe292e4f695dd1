package fetcher

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPOptions configures the FTP fetcher.
type FTPOptions struct {
	Timeout time.Duration
}

// FTPFetcher downloads source tables from anonymous FTP drops, where some
// partner exports still land. Each download is a single dial-login-retrieve
// round trip: the file is buffered in memory and the connection released
// before parsing starts. Source spreadsheets are a few megabytes at most.
type FTPFetcher struct {
	opts FTPOptions
}

// NewFTPFetcher creates a new FTPFetcher with the given options.
func NewFTPFetcher(opts FTPOptions) *FTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &FTPFetcher{opts: opts}
}

// splitFTPAddr resolves an ftp:// URL into a dialable host:port address
// and the remote file path.
func splitFTPAddr(rawURL string) (addr string, remotePath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrap(err, "parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", eris.Errorf("expected ftp scheme, got %q", u.Scheme)
	}
	if u.Path == "" {
		return "", "", eris.New("empty path in ftp url")
	}

	port := u.Port()
	if port == "" {
		port = "21"
	}
	return net.JoinHostPort(u.Hostname(), port), u.Path, nil
}

// Download retrieves the file behind the FTP URL into memory and returns
// a reader over the buffered contents.
func (f *FTPFetcher) Download(ctx context.Context, ftpURL string) (io.ReadCloser, error) {
	addr, remotePath, err := splitFTPAddr(ftpURL)
	if err != nil {
		return nil, err
	}

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrapf(err, "ftp dial %s", addr)
	}
	defer conn.Quit() //nolint:errcheck

	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		return nil, eris.Wrap(err, "ftp login")
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		return nil, eris.Wrapf(err, "ftp retrieve %s", remotePath)
	}
	data, err := io.ReadAll(resp)
	resp.Close() //nolint:errcheck
	if err != nil {
		return nil, eris.Wrap(err, "ftp read transfer")
	}

	zap.L().Debug("ftp: downloaded",
		zap.String("addr", addr),
		zap.String("path", remotePath),
		zap.Int("bytes", len(data)),
	)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// DownloadToFile downloads the FTP URL to a local file. Returns bytes written.
func (f *FTPFetcher) DownloadToFile(ctx context.Context, ftpURL string, path string) (int64, error) {
	rc, err := f.Download(ctx, ftpURL)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck

	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "create file")
	}
	defer file.Close() //nolint:errcheck

	n, err := io.Copy(file, rc)
	if err != nil {
		return n, eris.Wrap(err, "write file")
	}

	return n, nil
}
