package quizgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// blank is the marker substituted for the removed word in fill-in-the-blank prompts.
const blank = "_____"

// splitSentences cuts text after terminal punctuation followed by whitespace and at line breaks.
func splitSentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		start := 0
		runes := []rune(line)
		for i, r := range runes {
			if r != '.' && r != '!' && r != '?' {
				continue
			}
			if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
				continue
			}
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// truncate shortens s to at most n runes, appending suffix when it cuts.
func truncate(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + suffix
}

func trimTerminal(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".!?;:, ")
}

// normalize folds case and whitespace for duplicate detection.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(trimTerminal(s)), " "))
}

func firstUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
