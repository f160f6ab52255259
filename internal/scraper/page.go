package scraper

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"watchfeed/internal"
	"watchfeed/internal/util"
)

// Model pages outside these collections carry accessories and straps, not
// watches.
var allowedCollectionPaths = []string{
	"/en/collection/grand-complications",
	"/en/collection/complications",
	"/en/collection/calatrava",
	"/en/collection/gondolo",
	"/en/collection/golden-ellipse",
	"/en/collection/cubitus",
	"/en/collection/nautilus",
	"/en/collection/aquanaut",
	"/en/collection/twenty4",
	"/en/collection/pocket-watches",
}

// ParseModelLinks extracts model page URLs from the all-models listing,
// keeping only allowed collections and dropping duplicates while preserving
// first-seen order.
func ParseModelLinks(html []byte, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")
	seen := map[string]struct{}{}
	var links []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isAllowedModelPath(href) {
			return
		}
		full := base + href
		if _, ok := seen[full]; ok {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})

	return links, nil
}

func isAllowedModelPath(href string) bool {
	for _, prefix := range allowedCollectionPaths {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// ParseModelPage extracts the raw text fields of one model page. Every
// field passes through the sanitizer, so stored records are already free of
// markup remnants and mojibake.
func ParseModelPage(html []byte, url string) (internal.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return internal.RawRecord{}, err
	}

	rec := internal.RawRecord{
		SKU:         util.Sanitize(doc.Find(".last_element").First().Text()),
		Subtitle:    util.Sanitize(doc.Find(".subtitle").First().Text()),
		Description: util.Sanitize(doc.Find("div.article_flexbox_left_content.articleDescription").First().Text()),
		Collection:  util.Sanitize(doc.Find(".breadcrumb_link").Last().Text()),
		URL:         url,
	}

	specs := map[string]string{}
	doc.Find("div.article_flexbox_right_content").Each(func(_ int, div *goquery.Selection) {
		title := util.Sanitize(div.Find("div.article_flexbox_right_content_title").First().Text())
		text := util.Sanitize(div.Find("div.article_flexbox_right_content_text").First().Text())
		if title == "" || text == "" {
			return
		}
		specs[strings.ToLower(title)] = text
	})

	rec.Watch = specs["watch"]
	rec.Dial = specs["dial"]
	rec.Case = specs["case"]
	rec.Gemsetting = specs["gemsetting"]
	rec.GenderHint = specs["gender"]
	rec.Caliber = firstNonEmpty(specs["caliber"], specs["movement"])

	// Strap and bracelet describe the same attachment and feed one column.
	rec.Strap = util.CollapseSpaces(specs["strap"] + " " + specs["bracelet"])

	return rec, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
