package extract

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// plainTextStrategy reads the document in memory and asks ledongthuc/pdf for each page's plain text.
type plainTextStrategy struct{}

func (s *plainTextStrategy) Name() string { return "plain-text" }

func (s *plainTextStrategy) Attempt(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// rowTextStrategy stages the document on disk and rebuilds lines from positioned text rows.
type rowTextStrategy struct {
	tempDir string
}

func (s *rowTextStrategy) Name() string { return "text-rows" }

func (s *rowTextStrategy) Attempt(data []byte) (string, error) {
	return withTempFile(s.tempDir, "quizsynth-rows-*.pdf", data, func(path string) (string, error) {
		f, reader, err := pdf.Open(path)
		if err != nil {
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()

		var b strings.Builder
		for i := 1; i <= reader.NumPage(); i++ {
			page := reader.Page(i)
			if page.V.IsNull() {
				continue
			}
			rows, err := page.GetTextByRow()
			if err != nil {
				continue
			}
			for _, row := range rows {
				words := make([]string, 0, len(row.Content))
				for _, t := range row.Content {
					words = append(words, t.S)
				}
				b.WriteString(strings.Join(words, ""))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	})
}

// pdfcpuStrategy stages the document on disk, validates it with pdfcpu and parses each page content stream.
type pdfcpuStrategy struct {
	tempDir string
}

func (s *pdfcpuStrategy) Name() string { return "pdfcpu-content" }

func (s *pdfcpuStrategy) Attempt(data []byte) (string, error) {
	return withTempFile(s.tempDir, "quizsynth-pdfcpu-*.pdf", data, func(path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
		if err != nil {
			return "", fmt.Errorf("pdfcpu read: %w", err)
		}

		var b strings.Builder
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
			if err != nil || r == nil {
				continue
			}
			content, err := io.ReadAll(r)
			if err != nil || len(content) == 0 {
				continue
			}
			b.WriteString(parseContentStream(content))
			b.WriteString("\n\n")
		}
		return b.String(), nil
	})
}

// rawStreamStrategy scans every stream object in the file, inflating FlateDecode data where possible.
type rawStreamStrategy struct{}

// Inflation limits for one stream and for all streams of one document.
const (
	maxInflatedStream = 8 << 20
	maxInflatedTotal  = 32 << 20
)

var (
	streamRe        = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\n?endstream`)
	errInflateLimit = errors.New("inflated stream exceeds size limit")
)

func (s *rawStreamStrategy) Name() string { return "raw-streams" }

func (s *rawStreamStrategy) Attempt(data []byte) (string, error) {
	if !hasPDFHeader(data) {
		return "", errMissingPDFHeader
	}

	budget := int64(maxInflatedTotal)
	var b strings.Builder
	for _, m := range streamRe.FindAllSubmatch(data, -1) {
		content := m[1]
		inflated, err := inflate(content, min(budget, maxInflatedStream))
		budget -= int64(len(inflated))
		switch {
		case err == nil:
			content = inflated
		case errors.Is(err, errInflateLimit):
			if budget <= 0 {
				return "", fmt.Errorf("inflated streams exceed %d bytes", maxInflatedTotal)
			}
			continue
		}
		if !bytes.Contains(content, []byte("BT")) {
			continue
		}
		text := parseContentStream(content)
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// inflate decompresses zlib data, reading at most limit+1 bytes.
// On errInflateLimit the bytes read so far are returned with the error.
func inflate(data []byte, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return out, errInflateLimit
	}
	return out, nil
}
