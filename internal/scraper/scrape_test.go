package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"watchfeed/internal/config"
	"watchfeed/internal/storage"
)

func TestClientRetriesTransientStatus(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(config.Config{TimeoutMs: 2000, RateLimitRPS: 100})
	body, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
	if atomic.LoadInt64(&calls) != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestClientGivesUpOnPermanentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(config.Config{TimeoutMs: 2000, RateLimitRPS: 100})
	if _, err := client.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestServiceRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/collection/all-models", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/en/collection/nautilus/5711-1A-010", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(modelHTML))
	})
	mux.HandleFunc("/en/collection/grand-complications/5327G-001", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(modelHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	db, err := storage.Open(filepath.Join(t.TempDir(), "watchfeed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	cfg := config.Config{
		CatalogBaseURL: srv.URL,
		RateLimitRPS:   100,
		TimeoutMs:      2000,
	}
	svc := NewService(db, cfg)

	result, err := svc.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Links != 1 || result.Scraped != 1 || result.Stored != 1 {
		t.Fatalf("result = %+v", result)
	}

	rec, err := db.GetRecordBySKU("5327G-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatal("record not stored")
	}

	last, err := db.GetMetadata("scrape.last_run")
	if err != nil || last == nil {
		t.Fatalf("last run metadata = %v, %v", last, err)
	}
}
