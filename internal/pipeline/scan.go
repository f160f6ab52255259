package pipeline

import (
	"regexp"
	"strings"
)

// vocabScanner finds occurrences of a fixed vocabulary in free text and
// applies the shared tie-break: of all matches, the one starting last in
// reading order wins. A match lying entirely inside a longer match's span is
// discarded first, so "navy blue" beats its embedded "blue" and
// "prong buckle" beats its trailing "buckle".
type vocabScanner struct {
	entries []string
	res     []*regexp.Regexp
}

// newVocabScanner compiles one pattern per vocabulary entry. With
// wordBounded set, entries only match on word boundaries, so "lacquered"
// never yields "red".
func newVocabScanner(wordBounded bool, entries ...string) *vocabScanner {
	s := &vocabScanner{entries: entries}
	for _, entry := range entries {
		pat := regexp.QuoteMeta(strings.ToLower(entry))
		if wordBounded {
			pat = `\b` + pat + `\b`
		}
		s.res = append(s.res, regexp.MustCompile(pat))
	}
	return s
}

type vocabSpan struct {
	entry string
	start int
	end   int
}

// Last returns the winning vocabulary entry for text, or "" when nothing
// matches.
func (s *vocabScanner) Last(text string) string {
	lower := strings.ToLower(text)

	var spans []vocabSpan
	for i, re := range s.res {
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			spans = append(spans, vocabSpan{entry: s.entries[i], start: loc[0], end: loc[1]})
		}
	}

	best := -1
	for i, c := range spans {
		if containedInLonger(spans, i) {
			continue
		}
		if best < 0 || c.start > spans[best].start ||
			(c.start == spans[best].start && c.end > spans[best].end) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return spans[best].entry
}

func containedInLonger(spans []vocabSpan, i int) bool {
	c := spans[i]
	for j, o := range spans {
		if i == j {
			continue
		}
		if o.start <= c.start && c.end <= o.end && (o.end-o.start) > (c.end-c.start) {
			return true
		}
	}
	return false
}
