package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"watchfeed/internal/config"
	"watchfeed/internal/images"
	"watchfeed/internal/pipeline"
	"watchfeed/internal/scraper"
	"watchfeed/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		max := fs.Int("max", 0, "max model pages (0 = all)")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := scraper.NewService(db, cfg)
		result, err := svc.Run(context.Background(), *max)
		must(err)
		fmt.Printf("scrape done links=%d scraped=%d stored=%d\n", result.Links, result.Scraped, result.Stored)
	case "convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		schema := fs.String("schema", "catalog", "catalog|commerce")
		out := fs.String("out", "", "output base path (writes .csv and .xlsx)")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		base := *out
		if strings.TrimSpace(base) == "" {
			base = filepath.Join(cfg.OutputDir, *schema)
		}

		processor := pipeline.NewProcessingService(db, cfg)
		columns, rows, err := processor.ConvertStored(pipeline.Schema(*schema))
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no records to convert; run scrape first"))
		}
		must(pipeline.ExportRowsToCSV(columns, rows, base+".csv"))
		must(pipeline.ExportRowsToXLSX(columns, rows, base+".xlsx"))
		fmt.Printf("convert done schema=%s rows=%d output=%s.{csv,xlsx}\n", *schema, len(rows), base)
	case "images":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		skus, err := db.ListSKUs()
		must(err)
		if len(skus) == 0 {
			must(fmt.Errorf("no stored records; run scrape first"))
		}
		dl := images.NewDownloader(cfg)
		saved, err := dl.DownloadAll(context.Background(), skus)
		must(err)
		fmt.Printf("images done models=%d saved=%d dir=%s\n", len(skus), saved, cfg.ImageDir)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "raw records file (.csv or .xlsx)")
		schema := fs.String("schema", "catalog", "catalog|commerce")
		output := fs.String("output", "", "output base path (default: <input>_final)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		base := *output
		if strings.TrimSpace(base) == "" {
			base = strings.TrimSuffix(*input, filepath.Ext(*input)) + "_final"
		}

		records, err := pipeline.ReadRawRecords(*input)
		must(err)
		if len(records) == 0 {
			must(fmt.Errorf("no raw records in %s", *input))
		}

		opts := pipeline.MapperOptions{
			Brand:     cfg.BrandName,
			Category:  cfg.CategoryName,
			Namespace: cfg.MetafieldPrefix,
		}
		columns, err := pipeline.ColumnsFor(pipeline.Schema(*schema), opts)
		must(err)
		rows := pipeline.ConvertBatch(records, pipeline.Schema(*schema), opts)
		must(pipeline.ExportRowsToCSV(columns, rows, base+".csv"))
		must(pipeline.ExportRowsToXLSX(columns, rows, base+".xlsx"))
		fmt.Printf("run done schema=%s rows=%d output=%s.{csv,xlsx}\n", *schema, len(rows), base)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: watchfeed <command>")
	fmt.Println("commands:")
	fmt.Println("  scrape [--max=0]")
	fmt.Println("  convert --schema=catalog|commerce [--out=./out/catalog]")
	fmt.Println("  images")
	fmt.Println("  run --input=raw.csv --schema=catalog|commerce [--output=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
