// Package report renders analysis results as the sentences shown beside the
// ROC chart.
package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// JoinNames joins names into an English conjunction: "A", "A and b",
// "A, b and c". Only the first name is capitalized.
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return Capitalize(names[0])
	}
	head := make([]string, 0, len(names)-1)
	head = append(head, Capitalize(names[0]))
	head = append(head, names[1:len(names)-1]...)
	return strings.Join(head, ", ") + " and " + names[len(names)-1]
}
