package scraper

import (
	"context"
	"fmt"
	"time"

	"watchfeed/internal"
	"watchfeed/internal/config"
	"watchfeed/internal/storage"
)

type Service struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, client: NewClient(cfg), cfg: cfg}
}

type Result struct {
	Links   int
	Scraped int
	Stored  int
}

// Run fetches the all-models listing, walks every model page and upserts
// the raw records. With maxModels > 0 only that many pages are visited.
func (s *Service) Run(ctx context.Context, maxModels int) (Result, error) {
	listing, err := s.client.Get(ctx, s.cfg.CatalogBaseURL+"/en/collection/all-models")
	if err != nil {
		return Result{}, err
	}

	links, err := ParseModelLinks(listing, s.cfg.CatalogBaseURL)
	if err != nil {
		return Result{}, err
	}
	if maxModels > 0 && len(links) > maxModels {
		links = links[:maxModels]
	}

	result := Result{Links: len(links)}
	records := make([]internal.RawRecord, 0, len(links))
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.client.Get(ctx, link)
		if err != nil {
			fmt.Printf("scrape skip url=%s err=%v\n", link, err)
			continue
		}
		rec, err := ParseModelPage(page, link)
		if err != nil {
			fmt.Printf("scrape skip url=%s err=%v\n", link, err)
			continue
		}
		records = append(records, rec)
		result.Scraped++

		if (i+1)%25 == 0 {
			fmt.Printf("scrape progress %d/%d\n", i+1, len(links))
		}
		if s.cfg.ScrapeDelayMs > 0 {
			time.Sleep(time.Duration(s.cfg.ScrapeDelayMs) * time.Millisecond)
		}
	}

	stored, err := s.db.UpsertRecords(records)
	if err != nil {
		return result, err
	}
	result.Stored = stored

	_ = s.db.SetMetadata("scrape.last_run", time.Now().UTC().Format(time.RFC3339))
	return result, nil
}
