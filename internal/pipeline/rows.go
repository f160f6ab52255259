package pipeline

import (
	"watchfeed/internal"
)

// MapperOptions carries the fixed per-run constants both schema mappers
// share.
type MapperOptions struct {
	Brand     string
	Category  string
	Namespace string
}

// Derived bundles the secondary values composed from extractor outputs, so
// the schema mappers stay pure projections.
type Derived struct {
	Title            string
	Subtitle         string
	ShortDescription string
	CollectionTitle  string
	Handle           string
	Tags             string
}

func BuildDerived(rec internal.RawRecord, attrs internal.Attributes, opts MapperOptions) Derived {
	collectionTitle := CollectionTitle(rec.Collection)
	title := BuildTitle(opts.Brand, collectionTitle)
	return Derived{
		Title:            title,
		Subtitle:         BuildSubtitle(rec.SKU, collectionTitle),
		ShortDescription: BuildShortDescription(attrs),
		CollectionTitle:  collectionTitle,
		Handle:           BuildHandle(title, rec.SKU),
		Tags:             BuildTags(opts.Brand, attrs.Gender, rec.SKU),
	}
}

// CatalogColumns is the fixed column order of the generic catalog export.
var CatalogColumns = []string{
	"Title",
	"Product Subtitle",
	"Description",
	"Short Description",
	"Collection",
	"Collection Description",
	"Model",
	"Ref Number",
	"Brands",
	"Type",
	"Material",
	"Case Material",
	"Strap Type",
	"Strap Color",
	"Dial Color",
	"Case Size(mm)",
	"Size/Dimensions",
	"Case Height",
	"Water Resistance",
	"Gender",
	"Gender New",
	"Buckle",
	"Crystal",
	"Movement Type",
	"Watch Shape",
	"Gemstones",
	"Gemstones Description",
	"Call for Price",
	"URL",
}

// BuildCatalogRow projects one record onto the generic catalog layout. No
// extraction happens here, only renaming and grouping.
func BuildCatalogRow(rec internal.RawRecord, attrs internal.Attributes, d Derived, opts MapperOptions) internal.OutputRow {
	return internal.OutputRow{
		"Title":                  d.Title,
		"Product Subtitle":       d.Subtitle,
		"Description":            rec.Description,
		"Short Description":      d.ShortDescription,
		"Collection":             d.CollectionTitle,
		"Collection Description": "",
		"Model":                  d.CollectionTitle,
		"Ref Number":             rec.SKU,
		"Brands":                 opts.Brand,
		"Type":                   opts.Category,
		"Material":               attrs.Material,
		"Case Material":          attrs.Material,
		"Strap Type":             attrs.StrapType,
		"Strap Color":            attrs.StrapColor,
		"Dial Color":             attrs.DialColor,
		"Case Size(mm)":          attrs.Diameter,
		"Size/Dimensions":        attrs.SizeDimensions,
		"Case Height":            attrs.Thickness,
		"Water Resistance":       attrs.WaterResistance,
		"Gender":                 attrs.Gender,
		"Gender New":             attrs.GenderNew,
		"Buckle":                 attrs.Buckle,
		"Crystal":                attrs.Crystal,
		"Movement Type":          attrs.MovementType,
		"Watch Shape":            attrs.Shape,
		"Gemstones":              attrs.Gemstones,
		"Gemstones Description":  attrs.GemstonesDescription,
		"Call for Price":         "Yes",
		"URL":                    rec.URL,
	}
}

// CommerceColumns is the fixed column order of the commerce-platform import.
// Attribute columns carry metafield-qualified names under the given
// namespace.
func CommerceColumns(namespace string) []string {
	mf := func(key, typ string) string {
		return "Metafield: " + namespace + "." + key + " [" + typ + "]"
	}
	return []string{
		"Handle",
		"Title",
		"Vendor",
		"Category Name",
		"Tags",
		"Call For Price",
		mf("product_subtitle", "single_line_text_field"),
		mf("short_description", "single_line_text_field"),
		mf("description", "multi_line_text_field"),
		mf("collection", "single_line_text_field"),
		mf("ref_number", "single_line_text_field"),
		mf("case_material", "single_line_text_field"),
		mf("strap_type", "single_line_text_field"),
		mf("strap_color", "single_line_text_field"),
		mf("dial_color", "single_line_text_field"),
		mf("case_size", "single_line_text_field"),
		mf("size_dimensions", "single_line_text_field"),
		mf("case_height", "single_line_text_field"),
		mf("water_resistance", "single_line_text_field"),
		mf("gender", "single_line_text_field"),
		mf("gender_new", "single_line_text_field"),
		mf("buckle", "single_line_text_field"),
		mf("crystal", "single_line_text_field"),
		mf("movement_type", "single_line_text_field"),
		mf("watch_shape", "single_line_text_field"),
		mf("gemstones", "single_line_text_field"),
		mf("gemstones_description", "multi_line_text_field"),
		"URL",
	}
}

// BuildCommerceRow projects one record onto the commerce import layout.
func BuildCommerceRow(rec internal.RawRecord, attrs internal.Attributes, d Derived, opts MapperOptions) internal.OutputRow {
	cols := CommerceColumns(opts.Namespace)
	values := []string{
		d.Handle,
		d.Title,
		opts.Brand,
		opts.Category,
		d.Tags,
		"Yes",
		d.Subtitle,
		d.ShortDescription,
		rec.Description,
		d.CollectionTitle,
		rec.SKU,
		attrs.Material,
		attrs.StrapType,
		attrs.StrapColor,
		attrs.DialColor,
		attrs.Diameter,
		attrs.SizeDimensions,
		attrs.Thickness,
		attrs.WaterResistance,
		attrs.Gender,
		attrs.GenderNew,
		attrs.Buckle,
		attrs.Crystal,
		attrs.MovementType,
		attrs.Shape,
		attrs.Gemstones,
		attrs.GemstonesDescription,
		rec.URL,
	}

	row := make(internal.OutputRow, len(cols))
	for i, col := range cols {
		row[col] = values[i]
	}
	return row
}
