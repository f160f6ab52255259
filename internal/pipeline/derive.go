package pipeline

import (
	"regexp"
	"strings"

	"watchfeed/internal"
	"watchfeed/internal/util"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// RemoveSKUSuffix strips a trailing "-NNN" variant suffix from a reference
// number: "5327G-001" becomes "5327G". A SKU without a numeric suffix is
// returned unchanged.
func RemoveSKUSuffix(sku string) string {
	m := reSKUSuffix.FindStringSubmatch(strings.TrimSpace(sku))
	if m == nil {
		return strings.TrimSpace(sku)
	}
	return m[1]
}

// CollectionTitle turns a collection slug into its display form:
// "golden-ellipse" becomes "Golden Ellipse".
func CollectionTitle(collection string) string {
	return util.TitleCase(strings.ReplaceAll(collection, "-", " "))
}

// BuildTitle renders the product title from the brand and collection.
func BuildTitle(brand, collectionTitle string) string {
	return util.CollapseSpaces(brand + " " + collectionTitle + " Watch")
}

// BuildSubtitle is the suffix-stripped SKU joined to the title-cased
// collection with a hyphen.
func BuildSubtitle(sku, collectionTitle string) string {
	return RemoveSKUSuffix(sku) + "-" + collectionTitle
}

// BuildShortDescription joins the non-empty parts of {material, case size,
// movement type} with commas.
func BuildShortDescription(attrs internal.Attributes) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{attrs.Material, attrs.Diameter, attrs.MovementType} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// BuildHandle makes a URL slug from the title and reference number: lower
// case, every run of non-alphanumerics collapsed to a single hyphen, no
// leading or trailing hyphen.
func BuildHandle(title, refNumber string) string {
	slug := strings.ToLower(title + "-" + refNumber)
	slug = reNonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// BuildTags assembles the fixed leading tags plus brand, gender and
// reference number, skipping empties.
func BuildTags(brand, gender, refNumber string) string {
	tags := []string{"Watches", "Luxury Brands"}
	for _, t := range []string{brand, gender, refNumber} {
		if strings.TrimSpace(t) != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ", ")
}
