package webapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Downloader saves remote files to disk.
type Downloader struct{ r *requester }

func NewDownloader(userAgent string, timeout time.Duration) *Downloader {
	return &Downloader{r: newRequester("download", userAgent, timeout, 1)}
}

// Download writes the body of url to dest and returns the byte count.
// dest is only replaced once the whole body has been received.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating download directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var n int64
	err = d.r.do(ctx, "file", url, "", func(body io.Reader) error {
		var cerr error
		n, cerr = io.Copy(tmp, body)
		return cerr
	})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("moving download into place: %w", err)
	}
	return n, nil
}
