package util

import (
	"html"
	"regexp"
	"strings"
)

var (
	reTags   = regexp.MustCompile(`<[^>]*>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

type replacement struct {
	find string
	repl string
}

// Fix-ups for byte sequences corrupted by a lossy transport. Applied in
// order: multi-character sequences first, single-character catch-alls last,
// so a later rule never re-matches an earlier rule's output.
var mojibake = []replacement{
	{"â", "'"},
	{"â", "'"},
	{"â", "\""},
	{"â", ","},
	{"â", "—"},
	{"â", "–"},
	{"â¦", "..."},
	{"â¢", "•"},
	{"â€˜", "'"},
	{"â€™", "'"},
	{"â€œ", "\""},
	{"â€�", "\""},
	{"â€¦", "..."},
	{"â‚¬", "€"},
	{"â€", "\""},
	{"oâclock", "o'clock"},
	{"√â", "x"},
	{"Ã©", "é"},
	{"Ã¨", "è"},
	{"Ãª", "ê"},
	{"Ã«", "ë"},
	{"Ã®", "î"},
	{"Ã¯", "ï"},
	{"Ã´", "ô"},
	{"Ã¹", "ù"},
	{"Ã¼", "ü"},
	{"Ã§", "ç"},
	{"Ã±", "ñ"},
	{"Ã€", "À"},
	{"Ã‰", "É"},
	{"Ãˆ", "È"},
	{"ÃŠ", "Ê"},
	{"Ã‹", "Ë"},
	{"ÃŽ", "Î"},
	{"Ã", "Ô"},
	{"Ã™", "Ù"},
	{"Ãœ", "Ü"},
	{"Ã‡", "Ç"},
	{"Â", ""},
	{"‑", "-"},
	{"", ""},
	{"", ""},
	{"×", "x"},
	{"â", " "},
	{"Ã", "Ï"},
	{"Ï", " "},
}

// Sanitize decodes HTML entities, strips leftover tags, applies the mojibake
// fix-up table and collapses whitespace. Sanitizing already-clean text is a
// no-op.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	s := strings.ReplaceAll(input, "\uFEFF", "")
	s = html.UnescapeString(s)
	s = reTags.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", " ")
	for _, r := range mojibake {
		s = strings.ReplaceAll(s, r.find, r.repl)
	}
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TitleCase capitalizes the first letter of each space-separated word and
// lowercases the rest, preserving multi-word values like "Navy Blue".
func TitleCase(input string) string {
	words := strings.Fields(strings.ToLower(input))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}

// CollapseSpaces trims the input and squeezes whitespace runs to one space.
func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
