package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"quiz-synth/internal/domain"
)

// oleMagic is the compound file header shared by legacy .doc files and encrypted OOXML packages.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// encryptedPackageMarker is the UTF-16LE stream name Office uses for password protected OOXML.
var encryptedPackageMarker = utf16LE("EncryptedPackage")

// extractDocx reads word/document.xml from the archive and emits one line per paragraph.
func extractDocx(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if bytes.HasPrefix(data, oleMagic) && bytes.Contains(data, encryptedPackageMarker) {
			return "", domain.NewPasswordProtectedError()
		}
		return "", domain.NewCorruptedDocumentError(fmt.Errorf("open zip: %w", err))
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", domain.NewCorruptedDocumentError(errors.New("word/document.xml not found in archive"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", domain.NewCorruptedDocumentError(fmt.Errorf("open document.xml: %w", err))
	}
	defer rc.Close()

	text, err := docxParagraphs(rc)
	if err != nil {
		return "", domain.NewCorruptedDocumentError(err)
	}
	return text, nil
}

// docxParagraphs walks WordprocessingML tokens collecting w:t runs.
func docxParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var out strings.Builder
	var para strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				line := strings.TrimSpace(para.String())
				if line != "" {
					out.WriteString(line)
					out.WriteByte('\n')
				}
				para.Reset()
			}
		}
	}
	return out.String(), nil
}

func utf16LE(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		b = append(b, s[i], 0)
	}
	return b
}
