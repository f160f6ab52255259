package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"watchfeed/internal"
	"watchfeed/internal/util"
)

// rule is one (substring, result) pair of an ordered rule table. Tables are
// evaluated in sequence and the first matching rule wins, so precedence is
// part of the table, not of the code around it.
type rule struct {
	pattern string
	label   string
}

// "stainless steel" must be checked before bare "steel": manufacturer copy
// nests qualifiers ("stainless steel case, steel caseback").
var materialRules = []rule{
	{"stainless steel", "Stainless Steel"},
	{"steel", "Steel"},
	{"white gold", "White Gold"},
	{"rose gold", "Rose Gold"},
	{"yellow gold", "Yellow Gold"},
	{"platinum", "Platinum"},
}

// The strap material is named in the opening clause, so only the text up to
// the first comma or period is inspected.
var strapTypeRules = []rule{
	{"alligator", "Alligator Leather"},
	{"calfskin", "Calfskin"},
	{"steel", "Stainless Steel"},
	{"rose gold", "Rose Gold"},
	{"white gold", "White Gold"},
	{"composite", "Composite material"},
	{"polymer", "Polymer"},
	{"pearls (~48.85 ct) and white gold", "White Gold and Pearls"},
	{"pearls (~48.85 ct) and rose gold", "Rose Gold and Pearls"},
	{"pearls (~48.85 ct) and yellow gold", "Yellow Gold and Pearls"},
}

var movementRules = []rule{
	{"automatic", "Automatic"},
	{"self-winding", "Automatic"},
	{"manual", "Manual"},
	{"hand-wound", "Manual"},
	{"quartz", "Quartz"},
}

var strapColorScanner = newVocabScanner(true,
	"navy blue", "blue", "black", "brown", "dark brown", "gray", "grey",
	"green", "beige", "red", "olive green", "purple", "blue-gray",
	"white", "stainless steel", "rose gold", "yellow gold", "white gold",
	"blue-green", "chestnut", "steel", "taupe",
)

var dialColorScanner = newVocabScanner(true,
	"white", "beige", "mother of pearl", "green", "olive green", "blue",
	"black", "red", "gray", "brown", "purple", "chestnut", "multicolored",
	"portion of the sky", "ivory", "taupe", "silvery", "milky way", "rose-gilt",
	"diamonds",
)

var crystalScanner = newVocabScanner(false,
	"sapphire crystal case back", "sapphire crystal", "solid case back",
)

var buckleScanner = newVocabScanner(false,
	"fold-over clasp", "folding clasp", "prong buckle", "buckle", "clasp",
)

var buckleLabels = map[string]string{
	"fold-over clasp": "Fold-over Clasp",
	"folding clasp":   "Folding Clasp",
	"prong buckle":    "Prong Buckle",
	"buckle":          "Buckle",
	"clasp":           "Clasp",
}

var shapeByCollection = map[string]string{
	"grand complications": "Round",
	"complications":       "Round",
	"calatrava":           "Round",
	"twenty4":             "Round",
	"pocket watches":      "Round",
	"gondolo":             "Rectangular",
	"golden ellipse":      "Elipse",
	"nautilus":            "Octagon",
	"aquanaut":            "Octagon",
	"cubitus":             "Square",
}

var genderLabels = map[string][2]string{
	"men":    {"For Him", "Gents"},
	"ladies": {"For Her", "Ladies"},
}

var (
	reDiameter   = regexp.MustCompile(`(?i)(?:case\s+)?diameter(?:\s*\([^)]*\))?\s*:\s*(\d+(?:[.,]\d+)?)[\s\x{00A0}\x{2009}]*mm\.?`)
	reDimensions = regexp.MustCompile(`(?i)(?:case\s+)?dimensions?\s*:\s*([\d.,\s×xX\-–Éé]+mm)`)
	reThickness  = regexp.MustCompile(`(?i)(?:h(?:eight|ight)|thickness)\s*:\s*(\d+(?:[.,]\d+)?)\s*mm`)
	reNotWater   = regexp.MustCompile(`(?i)not\s*\(?water[\s-]?resistant\)?`)
	reWaterTo    = regexp.MustCompile(`(?i)water[\s-]?resistant\s*to\s*(\d+(?:\.\d+)?)\s*m(?:eters)?`)
	reNumToken   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	reSKUSuffix  = regexp.MustCompile(`^(.*)-\d+$`)
)

var dimSeparators = strings.NewReplacer("×", "x", "É", "x", "é", "x")

// ExtractAttributes runs every extractor over one sanitized record. It is
// total: any input, including the zero record, yields a value for every
// attribute, with empty string for no match.
func ExtractAttributes(rec internal.RawRecord) internal.Attributes {
	var attrs internal.Attributes

	attrs.Material = ExtractMaterial(rec.Case)
	attrs.Dimensions = ExtractDimensions(rec.Case)

	diameterTok := diameterToken(rec.Case)
	if diameterTok == "" && attrs.Dimensions != "" {
		diameterTok = largestNumericToken(attrs.Dimensions)
	}
	thicknessTok := thicknessToken(rec.Case)

	attrs.Diameter = renderOneDecimalMM(diameterTok)
	attrs.Thickness = renderDotMM(thicknessTok)
	attrs.SizeDimensions = buildSizeDimensions(attrs.Dimensions, diameterTok, thicknessTok)

	attrs.WaterResistance = ExtractWaterResistance(rec.Case)
	attrs.Crystal = ExtractCrystal(rec.Case)
	attrs.StrapType = ExtractStrapType(rec.Strap)
	attrs.StrapColor = ExtractStrapColor(rec.Strap)
	attrs.DialColor = ExtractDialColor(rec.Dial)
	attrs.Buckle = ExtractBuckle(rec.Strap)
	attrs.MovementType = ExtractMovementType(rec.Watch, rec.Caliber)
	attrs.Shape = ExtractShape(rec.Collection)
	attrs.Gender, attrs.GenderNew = ExtractGender(rec.GenderHint)
	attrs.Gemstones, attrs.GemstonesDescription = ExtractGemstones(rec.Gemsetting)

	return attrs
}

func ExtractMaterial(caseText string) string {
	return firstRule(materialRules, strings.ToLower(caseText))
}

// ExtractDiameter returns the case diameter rendered to one decimal with a
// " mm" suffix, or "" when the case text carries no diameter clause.
func ExtractDiameter(caseText string) string {
	return renderOneDecimalMM(diameterToken(caseText))
}

// ExtractDimensions returns the explicit dimensions run ("25.1 x 30 mm")
// with stray multiplication-sign variants normalized to "x".
func ExtractDimensions(caseText string) string {
	m := reDimensions.FindStringSubmatch(caseText)
	if m == nil {
		return ""
	}
	return util.CollapseSpaces(dimSeparators.Replace(m[1]))
}

// ExtractThickness returns the case height or thickness with the decimal
// separator normalized to a dot and a " mm" suffix.
func ExtractThickness(caseText string) string {
	return renderDotMM(thicknessToken(caseText))
}

func ExtractWaterResistance(caseText string) string {
	// A negation anywhere overrides any positive claim in the same text.
	if reNotWater.MatchString(caseText) {
		return "Not Water-resistant"
	}
	if m := reWaterTo.FindStringSubmatch(caseText); m != nil {
		return m[1] + "m"
	}
	return ""
}

// ExtractCrystal picks the last crystal mention in reading order; later
// clauses are typically corrective ("..., sapphire crystal case back").
func ExtractCrystal(caseText string) string {
	return util.TitleCase(crystalScanner.Last(caseText))
}

func ExtractStrapType(strapText string) string {
	first := strapText
	if idx := strings.IndexAny(strapText, ",."); idx >= 0 {
		first = strapText[:idx]
	}
	return firstRule(strapTypeRules, strings.ToLower(first))
}

// ExtractStrapColor scans the first sentence only: follow-up sentences
// describe stitching and hardware, not the strap itself.
func ExtractStrapColor(strapText string) string {
	return util.TitleCase(strapColorScanner.Last(firstSentence(strapText)))
}

func ExtractDialColor(dialText string) string {
	return util.TitleCase(dialColorScanner.Last(firstSentence(dialText)))
}

func ExtractBuckle(strapText string) string {
	return buckleLabels[buckleScanner.Last(strapText)]
}

// ExtractMovementType checks the primary watch description first and falls
// back to the caliber/movement text only when the primary yields no match.
func ExtractMovementType(watchText, movementText string) string {
	if v := firstRule(movementRules, strings.ToLower(watchText)); v != "" {
		return v
	}
	return firstRule(movementRules, strings.ToLower(movementText))
}

func ExtractShape(collection string) string {
	key := util.CollapseSpaces(strings.ToLower(strings.ReplaceAll(collection, "-", " ")))
	return shapeByCollection[key]
}

// ExtractGender is a pure lookup over the upstream categorical value, never
// an inference from case dimensions.
func ExtractGender(hint string) (gender, genderNew string) {
	pair, ok := genderLabels[strings.ToLower(strings.TrimSpace(hint))]
	if !ok {
		return "", ""
	}
	return pair[0], pair[1]
}

func ExtractGemstones(gemText string) (flag, description string) {
	t := strings.TrimSpace(gemText)
	if t == "" {
		return "No", ""
	}
	return "Yes", t
}

func firstRule(rules []rule, lower string) string {
	for _, r := range rules {
		if strings.Contains(lower, r.pattern) {
			return r.label
		}
	}
	return ""
}

func firstSentence(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 {
		return text[:idx]
	}
	return text
}

func diameterToken(caseText string) string {
	m := reDiameter.FindStringSubmatch(caseText)
	if m == nil {
		return ""
	}
	return m[1]
}

func thicknessToken(caseText string) string {
	m := reThickness.FindStringSubmatch(caseText)
	if m == nil {
		return ""
	}
	return m[1]
}

// largestNumericToken supplies a case size when no diameter clause exists
// but explicit dimensions do: the larger side of the case stands in.
func largestNumericToken(text string) string {
	best := ""
	bestVal := 0.0
	for _, tok := range reNumToken.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
		if err != nil {
			continue
		}
		if best == "" || v > bestVal {
			best, bestVal = tok, v
		}
	}
	return best
}

func buildSizeDimensions(dimensions, diameterTok, thicknessTok string) string {
	if dimensions != "" {
		return dimensions
	}
	d := oneDecimal(diameterTok)
	t := oneDecimal(thicknessTok)
	switch {
	case d != "" && t != "":
		return d + " mm x " + t + " mm"
	case d != "":
		return d + " mm"
	default:
		return ""
	}
}

// oneDecimal renders a numeric token to one decimal digit; a token that
// cannot be parsed is kept verbatim rather than dropped.
func oneDecimal(token string) string {
	if token == "" {
		return ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return token
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func renderOneDecimalMM(token string) string {
	if token == "" {
		return ""
	}
	return oneDecimal(token) + " mm"
}

func renderDotMM(token string) string {
	if token == "" {
		return ""
	}
	return strings.ReplaceAll(token, ",", ".") + " mm"
}
