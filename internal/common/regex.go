package common

import (
	"regexp"
	"strings"
)

// PatternRegex compiles the whole-word, case-insensitive matcher used for
// name patterns. Pattern text, surrounding spaces included, is matched
// literally: "CAFE " needs a word to follow it.
func PatternRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(pattern) + `\b`)
}

// MatchesAnyPattern reports whether name contains any of the patterns as a
// whole word. Invalid patterns are skipped.
func MatchesAnyPattern(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := PatternRegex(p)
		if err != nil {
			continue
		}
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
