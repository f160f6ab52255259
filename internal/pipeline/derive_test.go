package pipeline

import (
	"regexp"
	"testing"

	"watchfeed/internal"
)

func TestRemoveSKUSuffix(t *testing.T) {
	cases := map[string]string{
		"5327G-001":    "5327G",
		"7118/1200A-011": "7118/1200A",
		"5711/1A":      "5711/1A",
		"5327G":        "5327G",
		" 5327G-001 ":  "5327G",
		"":             "",
	}
	for sku, want := range cases {
		if got := RemoveSKUSuffix(sku); got != want {
			t.Fatalf("RemoveSKUSuffix(%q) = %q, want %q", sku, got, want)
		}
	}
}

func TestCollectionTitle(t *testing.T) {
	cases := map[string]string{
		"golden-ellipse":      "Golden Ellipse",
		"grand-complications": "Grand Complications",
		"twenty4":             "Twenty4",
		"nautilus":            "Nautilus",
		"":                    "",
	}
	for slug, want := range cases {
		if got := CollectionTitle(slug); got != want {
			t.Fatalf("CollectionTitle(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestBuildTitle(t *testing.T) {
	if got := BuildTitle("Patek Philippe", "Nautilus"); got != "Patek Philippe Nautilus Watch" {
		t.Fatalf("title = %q", got)
	}
	if got := BuildTitle("Patek Philippe", ""); got != "Patek Philippe Watch" {
		t.Fatalf("title without collection = %q", got)
	}
}

func TestBuildSubtitle(t *testing.T) {
	if got := BuildSubtitle("5327G-001", "Grand Complications"); got != "5327G-Grand Complications" {
		t.Fatalf("subtitle = %q", got)
	}
}

func TestBuildShortDescription(t *testing.T) {
	attrs := internal.Attributes{
		Material:     "White Gold",
		Diameter:     "39.0 mm",
		MovementType: "Automatic",
	}
	if got := BuildShortDescription(attrs); got != "White Gold, 39.0 mm, Automatic" {
		t.Fatalf("short description = %q", got)
	}

	attrs.Diameter = ""
	if got := BuildShortDescription(attrs); got != "White Gold, Automatic" {
		t.Fatalf("short description with gap = %q", got)
	}

	if got := BuildShortDescription(internal.Attributes{}); got != "" {
		t.Fatalf("empty attributes gave %q", got)
	}
}

func TestBuildHandle(t *testing.T) {
	cases := []struct {
		title string
		ref   string
		want  string
	}{
		{"Patek Philippe Nautilus Watch", "5711/1A-010", "patek-philippe-nautilus-watch-5711-1a-010"},
		{"Patek Philippe Twenty4 Watch", "4910/1200A", "patek-philippe-twenty4-watch-4910-1200a"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := BuildHandle(tc.title, tc.ref); got != tc.want {
			t.Fatalf("BuildHandle(%q, %q) = %q, want %q", tc.title, tc.ref, got, tc.want)
		}
	}

	reSlug := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	for _, input := range []string{"  --Odd__ Input!!", "Émail \"Grand Feu\"", "5207/700P-001"} {
		got := BuildHandle(input, input)
		if got != "" && !reSlug.MatchString(got) {
			t.Fatalf("BuildHandle(%q) = %q, not a slug", input, got)
		}
	}
}

func TestBuildTags(t *testing.T) {
	got := BuildTags("Patek Philippe", "For Him", "5327G")
	want := "Watches, Luxury Brands, Patek Philippe, For Him, 5327G"
	if got != want {
		t.Fatalf("tags = %q, want %q", got, want)
	}

	got = BuildTags("Patek Philippe", "", "5327G")
	want = "Watches, Luxury Brands, Patek Philippe, 5327G"
	if got != want {
		t.Fatalf("tags without gender = %q, want %q", got, want)
	}
}
