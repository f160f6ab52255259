package internal

// RawRecord is one scraped catalog item before normalization. Absent fields
// are empty strings, never an error.
type RawRecord struct {
	SKU         string
	Subtitle    string
	Description string
	Watch       string
	Dial        string
	Case        string
	Gemsetting  string
	Strap       string
	Collection  string
	GenderHint  string
	Caliber     string
	URL         string
}

// Attributes holds one canonical value per semantic attribute. Every field is
// a string and absence is an explicit empty string; extraction is total.
type Attributes struct {
	Material             string
	Diameter             string
	Dimensions           string
	Thickness            string
	SizeDimensions       string
	WaterResistance      string
	StrapType            string
	StrapColor           string
	DialColor            string
	Buckle               string
	Crystal              string
	MovementType         string
	Shape                string
	Gender               string
	GenderNew            string
	Gemstones            string
	GemstonesDescription string
}

// OutputRow maps output column names to rendered values for one record.
type OutputRow map[string]string

type RecordStatus string

const (
	StatusScraped   RecordStatus = "scraped"
	StatusConverted RecordStatus = "converted"
)

// RecordRow is a stored raw record plus bookkeeping.
type RecordRow struct {
	ID        int
	Status    RecordStatus
	Record    RawRecord
	CreatedAt string
	UpdatedAt string
}
