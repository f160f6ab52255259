package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	ImageDir  string

	CatalogBaseURL  string
	ImageBaseURL    string
	BrandName       string
	CategoryName    string
	RateLimitRPS    int
	TimeoutMs       int
	ScrapeDelayMs   int
	ImageWorkers    int
	ImageMaxPerSKU  int
	ImageTimeoutMs  int
	ImageSkipOwned  bool
	MetafieldPrefix string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ImageDir:  getEnv("IMAGE_DIR", filepath.Join(cwd, "img")),

		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "https://www.patek.com"),
		ImageBaseURL:    getEnv("IMAGE_BASE_URL", "https://static.patek.com/images/articles/gallery/2200/"),
		BrandName:       getEnv("BRAND_NAME", "Patek Philippe"),
		CategoryName:    getEnv("CATEGORY_NAME", "Watches"),
		RateLimitRPS:    getEnvInt("SCRAPE_RATE_LIMIT_RPS", 2),
		TimeoutMs:       getEnvInt("SCRAPE_TIMEOUT_MS", 30000),
		ScrapeDelayMs:   getEnvInt("SCRAPE_DELAY_MS", 250),
		ImageWorkers:    getEnvInt("IMAGE_WORKERS", 10),
		ImageMaxPerSKU:  getEnvInt("IMAGE_MAX_PER_SKU", 21),
		ImageTimeoutMs:  getEnvInt("IMAGE_TIMEOUT_MS", 3000),
		ImageSkipOwned:  getEnvBool("IMAGE_SKIP_EXISTING", true),
		MetafieldPrefix: getEnv("METAFIELD_PREFIX", "specs"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
