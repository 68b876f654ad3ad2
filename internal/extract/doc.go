package extract

import (
	"bytes"
	"errors"
	"strings"

	"quiz-synth/internal/domain"
)

// minRunLength is the shortest printable run kept when scanning binary Word files.
const minRunLength = 8

// extractDoc recovers text from a legacy Word 97-2003 compound file.
// Body text is stored either as 8-bit ANSI or UTF-16LE runs; the denser recovery wins.
func extractDoc(data []byte) (string, error) {
	if !bytes.HasPrefix(data, oleMagic) {
		return "", domain.NewCorruptedDocumentError(errors.New("missing compound file header"))
	}
	if bytes.Contains(data, encryptedPackageMarker) {
		return "", domain.NewPasswordProtectedError()
	}

	ansi := printableRuns(data, 1)
	wide := printableRuns(data, 2)
	if len(wide) > len(ansi) {
		return wide, nil
	}
	return ansi, nil
}

// printableRuns collects runs of printable ASCII characters. With stride 2 every
// character must be followed by a zero byte, matching UTF-16LE Latin text.
func printableRuns(data []byte, stride int) string {
	var out strings.Builder
	var run []byte

	flush := func() {
		if len(run) >= minRunLength && hasLetters(run) {
			out.Write(run)
			out.WriteByte('\n')
		}
		run = run[:0]
	}

	for i := 0; i+stride-1 < len(data); i += stride {
		c := data[i]
		if stride == 2 && data[i+1] != 0 {
			flush()
			continue
		}
		switch {
		case c == '\r' || c == '\n':
			flush()
		case c == '\t' || (c >= 0x20 && c < 0x7F):
			run = append(run, c)
		default:
			flush()
		}
	}
	flush()
	return out.String()
}

func hasLetters(b []byte) bool {
	letters := 0
	for _, c := range b {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			letters++
		}
	}
	return letters*2 >= len(b)
}
