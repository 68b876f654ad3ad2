package extract

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-synth/internal/domain"

	"golang.org/x/text/encoding/charmap"
)

// minPrintableRatio is the share of printable runes a decoding must reach to be accepted.
const minPrintableRatio = 0.9

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText decodes UTF-8 first and falls back to Windows-1252.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		s := string(data)
		if mostlyPrintable(s) {
			return s, nil
		}
		return "", domain.NewEncodingError(errors.New("content is not readable text"))
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", domain.NewEncodingError(err)
	}
	s := string(decoded)
	if !mostlyPrintable(s) {
		return "", domain.NewEncodingError(errors.New("content is neither UTF-8 nor Windows-1252 text"))
	}
	return s, nil
}

func mostlyPrintable(s string) bool {
	total, printable := 0, 0
	for _, r := range s {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 {
		return true
	}
	return float64(printable)/float64(total) >= minPrintableRatio
}

var (
	mdFenceRe    = regexp.MustCompile("(?m)^[ \\t]*(```|~~~).*$")
	mdHeadingRe  = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+(.*?)[ \t]*#*[ \t]*$`)
	mdListRe     = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+[.)])[ \t]+`)
	mdQuoteRe    = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	mdImageRe    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdEmphasisRe = regexp.MustCompile(`(\*\*|__|\*|_|~~|` + "`" + `)([^*_~` + "`" + `\n]+)(\*\*|__|\*|_|~~|` + "`" + `)`)
	mdRuleRe     = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
)

// stripMarkdown removes markup so headings survive as plain lines.
func stripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = mdFenceRe.ReplaceAllString(s, "")
	s = mdRuleRe.ReplaceAllString(s, "")
	s = mdHeadingRe.ReplaceAllString(s, "$1")
	s = mdListRe.ReplaceAllString(s, "")
	s = mdQuoteRe.ReplaceAllString(s, "")
	s = mdImageRe.ReplaceAllString(s, "$1")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = mdEmphasisRe.ReplaceAllString(s, "$2")
	return s
}
