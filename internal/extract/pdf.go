package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Strategy is one PDF text extraction technique.
// An empty string with a nil error means the technique found no text.
type Strategy interface {
	Name() string
	Attempt(data []byte) (string, error)
}

// ExhaustedError is returned when no strategy produced text.
type ExhaustedError struct {
	Attempts []string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d pdf extraction strategies failed: %s", len(e.Attempts), strings.Join(e.Attempts, "; "))
}

// StrategyChain tries strategies strictly in order until one yields text.
type StrategyChain struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewStrategyChain builds a chain from the given strategies.
func NewStrategyChain(logger *zap.Logger, strategies ...Strategy) *StrategyChain {
	return &StrategyChain{strategies: strategies, logger: logger}
}

// DefaultPDFStrategies returns the built-in techniques, cheapest first.
// tempDir is where file-based strategies stage the document; empty means os.TempDir.
func DefaultPDFStrategies(tempDir string) []Strategy {
	return []Strategy{
		&plainTextStrategy{},
		&rowTextStrategy{tempDir: tempDir},
		&pdfcpuStrategy{tempDir: tempDir},
		&rawStreamStrategy{},
	}
}

// Extract returns the text of the first strategy that produces any.
func (c *StrategyChain) Extract(data []byte) (string, error) {
	attempts := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		text, err := attempt(s, data)
		text = strings.TrimSpace(text)
		if err != nil {
			c.logger.Debug("PDF strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
			attempts = append(attempts, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		if text == "" {
			c.logger.Debug("PDF strategy found no text", zap.String("strategy", s.Name()))
			attempts = append(attempts, s.Name()+": no text")
			continue
		}
		c.logger.Debug("PDF strategy succeeded", zap.String("strategy", s.Name()), zap.Int("chars", len(text)))
		return text, nil
	}
	c.logger.Warn("PDF strategy chain exhausted", zap.Strings("attempts", attempts))
	return "", &ExhaustedError{Attempts: attempts}
}

// attempt runs one strategy, turning a panic inside a third-party decoder into an error.
func attempt(s Strategy, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Attempt(data)
}

// pdfHeaderWindow is how far into the file the %PDF- marker may start.
const pdfHeaderWindow = 1024

var errMissingPDFHeader = errors.New("missing %PDF- header")

func hasPDFHeader(data []byte) bool {
	return bytes.Contains(data[:min(len(data), pdfHeaderWindow)], []byte("%PDF-"))
}

func isEncryptedPDF(data []byte) bool {
	return bytes.Contains(data, []byte("/Encrypt"))
}
