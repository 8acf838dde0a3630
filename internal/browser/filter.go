package browser

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/glabrego/termfolio/internal/content"
)

// MaxMatchesPerEntry caps the matched lines reported for one entry.
const MaxMatchesPerEntry = 5

// FilterByTags keeps entries carrying every tag in tags. Comparison is exact
// after lowercasing both sides.
func FilterByTags(entries []content.Entry, tags []string) []content.Entry {
	out := make([]content.Entry, 0, len(entries))
	for _, entry := range entries {
		if hasAllTags(entry, tags) {
			out = append(out, entry)
		}
	}
	return out
}

func hasAllTags(entry content.Entry, tags []string) bool {
	for _, want := range tags {
		want = strings.ToLower(want)
		found := false
		for _, tag := range entry.Tags {
			if strings.ToLower(tag) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterByTagJump keeps entries with at least one tag containing tag,
// ignoring case.
func FilterByTagJump(entries []content.Entry, tag string) []content.Entry {
	needle := strings.ToLower(tag)
	out := make([]content.Entry, 0, len(entries))
	for _, entry := range entries {
		for _, t := range entry.Tags {
			if strings.Contains(strings.ToLower(t), needle) {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}

// Span is a half-open byte range within a line.
type Span struct {
	Start int
	End   int
}

type LineMatch struct {
	Number int
	Text   string
	Spans  []Span
}

// SearchContent scans raw line by line for pattern, ignoring case, and
// returns at most limit matching lines. limit <= 0 means no cap.
func SearchContent(raw, pattern string, limit int) []LineMatch {
	if pattern == "" {
		return nil
	}
	needle := lowerRunes(pattern)
	var out []LineMatch
	for i, line := range strings.Split(raw, "\n") {
		spans := matchSpans(line, needle)
		if len(spans) == 0 {
			continue
		}
		out = append(out, LineMatch{Number: i + 1, Text: line, Spans: spans})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// matchSpans finds non-overlapping case-insensitive occurrences of needle,
// reported as byte offsets into the original line.
func matchSpans(line string, needle []rune) []Span {
	runes := []rune(line)
	if len(needle) == 0 || len(runes) < len(needle) {
		return nil
	}
	offsets := make([]int, 0, len(runes)+1)
	pos := 0
	for _, r := range runes {
		offsets = append(offsets, pos)
		pos += utf8.RuneLen(r)
	}
	offsets = append(offsets, pos)

	var spans []Span
	for i := 0; i+len(needle) <= len(runes); {
		if runesMatchAt(runes, i, needle) {
			spans = append(spans, Span{Start: offsets[i], End: offsets[i+len(needle)]})
			i += len(needle)
			continue
		}
		i++
	}
	return spans
}

func runesMatchAt(runes []rune, at int, needle []rune) bool {
	for j, want := range needle {
		if unicode.ToLower(runes[at+j]) != want {
			return false
		}
	}
	return true
}

// ParseTags reads a comma-separated tag list into lowercase tags, keeping the
// first occurrence of each in the order given.
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// FormatTags is the inverse of ParseTags. Order is preserved, so a location
// read and written back without changes keeps its query value.
func FormatTags(tags []string) string {
	return strings.Join(tags, ",")
}
