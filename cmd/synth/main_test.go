package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"quiz-synth/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const notes = `Photosynthesis is the process by which green plants convert light energy into chemical energy.
Chlorophyll is the green pigment that absorbs light in the chloroplast.
The Calvin cycle uses 3 molecules of carbon dioxide to build one sugar molecule.
Mitochondria are known as the powerhouse of the cell.`

func testPipeline(t *testing.T) *pipeline {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Synthesis.Seed = 11

	p, err := newPipeline(cfg, zap.NewNop())
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	p := testPipeline(t)
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "bio.txt", notes),
		writeFile(t, dir, "short.md", "# Tiny\nToo short."),
		writeFile(t, dir, "image.png", "not really a png"),
		filepath.Join(dir, "missing.txt"),
		writeFile(t, dir, "bio2.md", "# Cells\n\n"+notes),
	}

	var out bytes.Buffer
	failed, err := p.run(context.Background(), options{count: 5, types: "mcq,short", difficulty: "medium", concurrency: 2}, files, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, failed)

	var results []fileResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, len(files))

	for i, r := range results {
		assert.Equal(t, files[i], r.File, "results keep input order")
	}

	for _, i := range []int{0, 4} {
		r := results[i]
		assert.Empty(t, r.Error)
		assert.Equal(t, "Biology", r.Topic)
		require.NotNil(t, r.Quiz)
		assert.Equal(t, "Biology Quiz", r.Quiz.Title)
		assert.Len(t, r.Quiz.Questions, 5)
	}
	assert.Contains(t, results[1].Error, "too short")
	assert.Contains(t, results[2].Error, "Unsupported file type")
	assert.NotEmpty(t, results[3].Error)
}

func TestRun_SubjectOverrideAndBadFlags(t *testing.T) {
	p := testPipeline(t)
	path := writeFile(t, t.TempDir(), "bio.txt", notes)

	var out bytes.Buffer
	failed, err := p.run(context.Background(), options{count: 5, types: "fillblank", difficulty: "easy", subject: "Plant Science", concurrency: 1}, []string{path}, &out)
	require.NoError(t, err)
	assert.Zero(t, failed)

	var results []fileResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Equal(t, "Plant Science Quiz", results[0].Quiz.Title)
	assert.Equal(t, "easy", results[0].Quiz.Difficulty)

	out.Reset()
	failed, err = p.run(context.Background(), options{count: 50, types: "essay", difficulty: "medium"}, []string{path}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Contains(t, results[0].Error, "Invalid quiz generation request")
}

func TestRun_Canceled(t *testing.T) {
	p := testPipeline(t)
	path := writeFile(t, t.TempDir(), "bio.txt", notes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.run(ctx, options{count: 5, types: "mcq", difficulty: "medium", concurrency: 1}, []string{path}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what was written.
func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = orig })

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()
	os.Stdout = orig
	require.NoError(t, w.Close())
	return <-done
}

func TestRunMain_StdoutIsJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	configPath := writeFile(t, dir, "config.yaml", "logger:\n  level: debug\nsynthesis:\n  seed: 3\n")
	path := writeFile(t, dir, "notes.txt", notes)

	var code int
	stdout := captureStdout(t, func() {
		code = runMain([]string{"-config", configPath, "-count", "5", "-types", "mcq", path})
	})
	assert.Zero(t, code)

	var results []fileResult
	require.NoError(t, json.Unmarshal(stdout, &results), "stdout: %s", stdout)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Quiz)
	assert.Len(t, results[0].Quiz.Questions, 5)
}

func TestRunMain_Usage(t *testing.T) {
	assert.Equal(t, 2, runMain(nil))
	assert.Equal(t, 2, runMain([]string{"-count", "not-a-number", "x.txt"}))
}
