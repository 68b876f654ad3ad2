// Package textclean normalizes raw extracted text before analysis.
package textclean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	brokenSentenceRe  = regexp.MustCompile(`([a-z,])\n([a-z])`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
	periodCapitalRe   = regexp.MustCompile(`([.:])([A-Z])`)
)

// Clean normalizes line endings, strips control characters, repairs sentences
// split across line breaks and collapses redundant whitespace.
func Clean(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = stripControl(s)
	s = horizontalSpaceRe.ReplaceAllString(s, " ")
	s = trimLines(s)
	for brokenSentenceRe.MatchString(s) {
		s = brokenSentenceRe.ReplaceAllString(s, "$1 $2")
	}
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = periodCapitalRe.ReplaceAllString(s, "$1 $2")
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == '\uFEFF' || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// CountWords returns the number of whitespace-delimited tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
