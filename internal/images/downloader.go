package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"watchfeed/internal/config"
)

// Downloader probes the gallery image URLs of each model and saves whatever
// exists. Missing indexes are normal: models carry anywhere from one to the
// configured maximum number of gallery shots.
type Downloader struct {
	cfg        config.Config
	httpClient *http.Client
}

func NewDownloader(cfg config.Config) *Downloader {
	return &Downloader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ImageTimeoutMs) * time.Millisecond},
	}
}

// ImageURL forms the gallery URL for one SKU and image index.
func (d *Downloader) ImageURL(sku string, num int) string {
	formatted := strings.ReplaceAll(sku, "-", "_")
	return fmt.Sprintf("%s%s_%d@2x.jpg", d.cfg.ImageBaseURL, formatted, num)
}

// FileName is the local name an image is saved under.
func (d *Downloader) FileName(sku string, num int) string {
	return fmt.Sprintf("PP-%s-%d.jpg", sku, num)
}

type job struct {
	sku string
	num int
}

// DownloadAll fans the (sku, index) grid out over a bounded worker pool and
// returns the number of images saved. Individual failures are skipped.
func (d *Downloader) DownloadAll(ctx context.Context, skus []string) (int, error) {
	if err := os.MkdirAll(d.cfg.ImageDir, 0o755); err != nil {
		return 0, err
	}

	workers := d.cfg.ImageWorkers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan job, workers)
	var saved int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if d.download(ctx, j.sku, j.num) {
					atomic.AddInt64(&saved, 1)
				}
			}
		}()
	}

	for _, sku := range skus {
		for num := 1; num <= d.cfg.ImageMaxPerSKU; num++ {
			jobs <- job{sku: sku, num: num}
		}
	}
	close(jobs)
	wg.Wait()

	return int(atomic.LoadInt64(&saved)), ctx.Err()
}

func (d *Downloader) download(ctx context.Context, sku string, num int) bool {
	path := filepath.Join(d.cfg.ImageDir, d.FileName(sku, num))
	if d.cfg.ImageSkipOwned {
		if _, err := os.Stat(path); err == nil {
			return false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.ImageURL(sku, num), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	file, err := os.Create(path)
	if err != nil {
		return false
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return false
	}
	return file.Close() == nil
}
