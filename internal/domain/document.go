package domain

import "strings"

// MaxUploadBytes is the default upper bound for a RawDocument.
const MaxUploadBytes = 10 * 1024 * 1024

// Supported content types.
const (
	ContentTypePlainText = "text/plain"
	ContentTypeMarkdown  = "text/markdown"
	ContentTypeXMarkdown = "text/x-markdown"
	ContentTypePDF       = "application/pdf"
	ContentTypeDoc       = "application/msword"
	ContentTypeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DefaultAllowedContentTypes is the upload allow-list.
var DefaultAllowedContentTypes = []string{
	ContentTypePlainText,
	ContentTypeMarkdown,
	ContentTypeXMarkdown,
	ContentTypePDF,
	ContentTypeDoc,
	ContentTypeDocx,
}

// NormalizeContentType lowercases a MIME type and drops parameters such as charset.
func NormalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// RawDocument is an uploaded byte stream. It lives for a single request.
type RawDocument struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Size returns the byte length of the document.
func (d *RawDocument) Size() int {
	return len(d.Data)
}

// ParsedText is the cleaned text produced by document acquisition.
type ParsedText struct {
	Content        string
	WordCount      int
	CharacterCount int
	OriginalName   string
	FileType       string
}

// TermFrequency is a key term and how often it occurs.
type TermFrequency struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// DocumentAnalysis holds structural statistics of cleaned text.
type DocumentAnalysis struct {
	TotalWords     int
	TotalSentences int
	Paragraphs     int
	Headings       []string
	KeyTerms       []TermFrequency
	Difficulty     Difficulty
}

var extensionContentTypes = map[string]string{
	".txt":      ContentTypePlainText,
	".md":       ContentTypeMarkdown,
	".markdown": ContentTypeMarkdown,
	".pdf":      ContentTypePDF,
	".doc":      ContentTypeDoc,
	".docx":     ContentTypeDocx,
}

// ResolveContentType returns the declared type, or the type implied by the
// filename extension when the declared one is missing or generic.
func ResolveContentType(declared, filename string) string {
	ct := NormalizeContentType(declared)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if i := strings.LastIndex(filename, "."); i >= 0 {
		if mapped, ok := extensionContentTypes[strings.ToLower(filename[i:])]; ok {
			return mapped
		}
	}
	return ct
}
