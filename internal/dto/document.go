package dto

import "quiz-synth/internal/domain"

const (
	maxResponseKeyTerms = 5
	maxResponseHeadings = 3
)

// PasteTextRequest is the body of POST /api/documents/text
type PasteTextRequest struct {
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
	Analyze bool   `json:"analyze,omitempty"`
}

// AnalysisResponse is a trimmed DocumentAnalysis.
type AnalysisResponse struct {
	TotalWords     int      `json:"totalWords"`
	TotalSentences int      `json:"totalSentences"`
	Paragraphs     int      `json:"paragraphs"`
	Difficulty     string   `json:"difficulty"`
	KeyTerms       []string `json:"keyTerms"`
	Headings       []string `json:"headings"`
}

// UploadResponse represents extracted document text in the API response
type UploadResponse struct {
	Content        string            `json:"content"`
	WordCount      int               `json:"wordCount"`
	OriginalName   string            `json:"originalName"`
	FileType       string            `json:"fileType"`
	CharacterCount int               `json:"characterCount"`
	Analysis       *AnalysisResponse `json:"analysis,omitempty"`
	DetectedTopic  string            `json:"detectedTopic,omitempty"`
}

// NewUploadResponse converts parsed text, and optionally its analysis, into the wire shape.
// analysis may be nil.
func NewUploadResponse(parsed *domain.ParsedText, analysis *domain.DocumentAnalysis, topic string) *UploadResponse {
	resp := &UploadResponse{
		Content:        parsed.Content,
		WordCount:      parsed.WordCount,
		OriginalName:   parsed.OriginalName,
		FileType:       parsed.FileType,
		CharacterCount: parsed.CharacterCount,
	}
	if analysis == nil {
		return resp
	}

	terms := make([]string, 0, maxResponseKeyTerms)
	for _, kt := range analysis.KeyTerms {
		if len(terms) == maxResponseKeyTerms {
			break
		}
		terms = append(terms, kt.Term)
	}
	headings := analysis.Headings
	if len(headings) > maxResponseHeadings {
		headings = headings[:maxResponseHeadings]
	}
	if headings == nil {
		headings = []string{}
	}

	resp.Analysis = &AnalysisResponse{
		TotalWords:     analysis.TotalWords,
		TotalSentences: analysis.TotalSentences,
		Paragraphs:     analysis.Paragraphs,
		Difficulty:     string(analysis.Difficulty),
		KeyTerms:       terms,
		Headings:       headings,
	}
	resp.DetectedTopic = topic
	return resp
}
