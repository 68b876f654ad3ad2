package extract

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// tjSpaceThreshold is the TJ kerning adjustment (thousandths of an em) treated as a word gap.
const tjSpaceThreshold = -250

// parseContentStream pulls shown text out of a decoded PDF content stream.
// Only the text showing and positioning operators are interpreted.
func parseContentStream(data []byte) string {
	var out textWriter
	var pending []byte
	var operands []float64
	inArray := false

	show := func() {
		out.WriteString(decodePDFBytes(pending))
		pending = pending[:0]
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFWhite(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, next := readLiteralString(data, i)
			pending = append(pending, s...)
			i = next
		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			s, next := readHexString(data, i)
			pending = append(pending, s...)
			i = next
		case c == '>':
			i++
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case c == '/':
			i++
			for i < len(data) && isPDFRegular(data[i]) {
				i++
			}
		case c == '\'' || c == '"':
			out.newline()
			show()
			operands = operands[:0]
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i++
			for i < len(data) && (data[i] == '.' || (data[i] >= '0' && data[i] <= '9')) {
				i++
			}
			v, err := strconv.ParseFloat(string(data[start:i]), 64)
			if err != nil {
				continue
			}
			if inArray {
				if v < tjSpaceThreshold {
					pending = append(pending, ' ')
				}
			} else {
				operands = append(operands, v)
			}
		default:
			start := i
			for i < len(data) && isPDFRegular(data[i]) {
				i++
			}
			if i == start {
				i++
				continue
			}
			switch string(data[start:i]) {
			case "Tj", "TJ":
				show()
			case "T*", "ET", "Tm":
				out.newline()
			case "Td", "TD":
				if len(operands) >= 2 && operands[len(operands)-1] != 0 {
					out.newline()
				} else {
					out.space()
				}
			}
			pending = pending[:0]
			operands = operands[:0]
		}
	}
	return strings.TrimSpace(out.String())
}

// textWriter avoids doubling separators between shown strings.
type textWriter struct {
	strings.Builder
	last byte
}

func (w *textWriter) WriteString(s string) {
	if s == "" {
		return
	}
	w.Builder.WriteString(s)
	w.last = s[len(s)-1]
}

func (w *textWriter) newline() {
	if w.Len() > 0 && w.last != '\n' {
		w.WriteString("\n")
	}
}

func (w *textWriter) space() {
	if w.Len() > 0 && w.last != ' ' && w.last != '\n' {
		w.WriteString(" ")
	}
}

// readLiteralString decodes a (...) string starting at data[start] and returns the index after it.
func readLiteralString(data []byte, start int) ([]byte, int) {
	var out []byte
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b', 'f':
			case '\r', '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					val := 0
					j := 0
					for j < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7' {
						val = val*8 + int(data[i]-'0')
						i++
						j++
					}
					out = append(out, byte(val))
					continue
				}
				out = append(out, e)
			}
			i++
		case c == '(':
			if depth > 0 {
				out = append(out, c)
			}
			depth++
			i++
		case c == ')':
			depth--
			i++
			if depth == 0 {
				return out, i
			}
			out = append(out, c)
		default:
			out = append(out, c)
			i++
		}
	}
	return out, i
}

// readHexString decodes a <...> string starting at data[start].
func readHexString(data []byte, start int) ([]byte, int) {
	var digits []byte
	i := start + 1
	for i < len(data) && data[i] != '>' {
		if isHexDigit(data[i]) {
			digits = append(digits, data[i])
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for j := 0; j < len(digits); j += 2 {
		v, err := strconv.ParseUint(string(digits[j:j+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out, i + 1
}

// decodePDFBytes maps single-byte PDF string data to text, dropping unprintable bytes.
func decodePDFBytes(b []byte) string {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		decoded = b
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, string(decoded))
}

func isPDFWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isPDFRegular(c byte) bool {
	if isPDFWhite(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
