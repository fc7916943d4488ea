package ratedoc

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinDedupeLineLength is the key length a line must exceed before it
	// is considered for deduplication. Shorter lines are structural text
	// ("Pressemelding", "Tabell 1") that legitimately repeats.
	MinDedupeLineLength = 20

	// DedupeWindow is the number of most recently kept lines that a line
	// is compared against in addition to all earlier kept lines.
	DedupeWindow = 5
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	horizontalRe = regexp.MustCompile(`[ \t\f\v]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText cleans extracted page text: line endings become "\n",
// leftover tags are stripped and entities decoded, horizontal whitespace
// runs collapse to one space, every line is trimmed and empty lines are
// dropped.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = horizontalRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// DedupeLines removes repeated lines from normalized text, scanning top to
// bottom. A line is dropped when its key repeats the key of an earlier kept
// line or of one of the DedupeWindow most recent kept lines. Keys are the
// lowercased line with whitespace runs collapsed; keys of
// MinDedupeLineLength runes or fewer are never deduplicated.
func DedupeLines(s string) string {
	if s == "" {
		return ""
	}

	seen := make(map[string]bool)
	recent := make([]string, 0, DedupeWindow)
	var kept []string

	for _, line := range strings.Split(s, "\n") {
		key := lineKey(line)
		if utf8.RuneCountInString(key) <= MinDedupeLineLength {
			kept = append(kept, line)
			continue
		}
		if seen[key] || contains(recent, key) {
			continue
		}
		seen[key] = true
		kept = append(kept, line)
		if len(recent) == DedupeWindow {
			recent = recent[1:]
		}
		recent = append(recent, key)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// CleanText normalizes and deduplicates extracted text.
// Returns the empty string when nothing remains.
func CleanText(s string) string {
	return DedupeLines(NormalizeText(s))
}

func lineKey(line string) string {
	return strings.ToLower(strings.Join(strings.Fields(line), " "))
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
