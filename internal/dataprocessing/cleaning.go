package dataprocessing

import (
	"regexp"
	"strings"
)

// openParenSpaceRe matches whitespace after "(" that precedes a digit
var openParenSpaceRe = regexp.MustCompile(`\(\s+(\d)`)

// CleanLabel replaces underscores with spaces
func CleanLabel(label string) string {
	return strings.TrimSpace(strings.ReplaceAll(label, "_", " "))
}

// CleanValue normalizes "( 2.3)" to "(2.3)"
func CleanValue(value string) string {
	return openParenSpaceRe.ReplaceAllString(value, "(${1}")
}
