package extract

import (
	"fmt"
	"os"
)

// withTempFile writes data to a fresh temporary file, hands its path to fn and
// removes the file afterwards, including when fn fails or panics.
func withTempFile(dir, pattern string, data []byte, fn func(path string) (string, error)) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return fn(path)
}
