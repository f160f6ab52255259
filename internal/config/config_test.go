package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BrandName != "Patek Philippe" {
		t.Fatalf("brand = %q", cfg.BrandName)
	}
	if cfg.ImageWorkers != 10 || cfg.ImageMaxPerSKU != 21 {
		t.Fatalf("image settings = %d workers, %d per sku", cfg.ImageWorkers, cfg.ImageMaxPerSKU)
	}
	if !cfg.ImageSkipOwned {
		t.Fatal("image skip existing not defaulted on")
	}
	if cfg.MetafieldPrefix != "specs" {
		t.Fatalf("metafield prefix = %q", cfg.MetafieldPrefix)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BRAND_NAME", "Test Brand")
	t.Setenv("SCRAPE_RATE_LIMIT_RPS", "7")
	t.Setenv("IMAGE_SKIP_EXISTING", "no")
	t.Setenv("SCRAPE_TIMEOUT_MS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BrandName != "Test Brand" {
		t.Fatalf("brand = %q", cfg.BrandName)
	}
	if cfg.RateLimitRPS != 7 {
		t.Fatalf("rps = %d", cfg.RateLimitRPS)
	}
	if cfg.ImageSkipOwned {
		t.Fatal("image skip existing not overridden")
	}
	// A malformed value falls back to the default.
	if cfg.TimeoutMs != 30000 {
		t.Fatalf("timeout = %d", cfg.TimeoutMs)
	}
}
