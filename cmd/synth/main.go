// Command synth generates quizzes for a batch of documents without starting the HTTP server.
//
//	synth -count 10 -types mcq,short -difficulty medium notes.pdf chapter2.docx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"quiz-synth/internal/analysis"
	"quiz-synth/internal/config"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/dto"
	"quiz-synth/internal/extract"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/quizgen"
	"quiz-synth/internal/topic"
	"quiz-synth/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

type options struct {
	count       int
	types       string
	difficulty  string
	subject     string
	concurrency int
}

type fileResult struct {
	File  string            `json:"file"`
	Topic string            `json:"topic,omitempty"`
	Quiz  *dto.QuizResponse `json:"quiz,omitempty"`
	Error string            `json:"error,omitempty"`
}

type pipeline struct {
	acquirer   domain.DocumentAcquirer
	classifier *topic.Classifier
	validator  *validation.Validator
	generator  domain.QuizGenerationService
	logger     *zap.Logger
}

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain parses args, processes the files and returns the exit code.
// Stdout carries only the JSON results; logs go to stderr unless a file sink is configured.
func runMain(args []string) int {
	var (
		opts       options
		configPath string
	)
	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	fs.IntVar(&opts.count, "count", 10, "questions per quiz (5-20)")
	fs.StringVar(&opts.types, "types", "mcq,short,fillblank", "comma-separated question types")
	fs.StringVar(&opts.difficulty, "difficulty", "medium", "easy, medium, hard or adaptive")
	fs.StringVar(&opts.subject, "subject", "", "subject for every file; detected per file when empty")
	fs.IntVar(&opts.concurrency, "concurrency", defaultConcurrency, "files processed at once")
	fs.StringVar(&configPath, "config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: synth [flags] file...")
		fs.PrintDefaults()
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if cfg.Logger.Output == "" || cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	appLogger := logger.Get()
	if cfg.File != "" {
		appLogger.Debug("Using config file", zap.String("path", cfg.File))
	}

	p, err := newPipeline(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to build pipeline", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed, err := p.run(ctx, opts, fs.Args(), os.Stdout)
	if err != nil {
		appLogger.Error("Batch failed", zap.Error(err))
		return 1
	}
	if failed > 0 {
		appLogger.Warn("Some files could not be processed", zap.Int("failed", failed))
		return 1
	}
	return 0
}

func newPipeline(cfg *config.Config, log *zap.Logger) (*pipeline, error) {
	table, err := topic.TableFromPath(cfg.Synthesis.TopicTable)
	if err != nil {
		return nil, err
	}
	classifier := topic.NewClassifier(table)
	return &pipeline{
		acquirer: extract.NewAcquirer(log,
			extract.WithMaxBytes(cfg.Upload.MaxBytes),
			extract.WithAllowedTypes(cfg.Upload.AllowedTypes),
		),
		classifier: classifier,
		validator:  validation.NewValidator(cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes),
		generator:  quizgen.NewGenerator(log, classifier, analysis.NewAnalyzer(), quizgen.WithSeed(cfg.Synthesis.Seed)),
		logger:     log,
	}, nil
}

// run processes files with bounded concurrency and writes one JSON array, in
// input order, to out. Per-file failures are reported in the output and counted.
func (p *pipeline) run(ctx context.Context, opts options, files []string, out io.Writer) (int, error) {
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.process(ctx, opts, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return failed, fmt.Errorf("write results: %w", err)
	}
	return failed, nil
}

func (p *pipeline) process(ctx context.Context, opts options, path string) fileResult {
	res := fileResult{File: path}
	fail := func(err error) fileResult {
		p.logger.Warn("File failed", zap.String("file", path), zap.Error(err))
		res.Error = err.Error()
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	parsed, err := p.acquirer.Acquire(&domain.RawDocument{
		Data:        data,
		ContentType: domain.ResolveContentType("", path),
		Filename:    filepath.Base(path),
	})
	if err != nil {
		return fail(err)
	}

	res.Topic = p.classifier.Classify(parsed.Content)
	subject := opts.subject
	if subject == "" {
		subject = res.Topic
	}

	req, errs := p.validator.ValidateGenerateQuizRequest(&dto.GenerateQuizRequest{
		Subject:       subject,
		Content:       parsed.Content,
		Difficulty:    opts.difficulty,
		QuestionCount: opts.count,
		QuestionTypes: strings.Split(opts.types, ","),
	})
	if len(errs) > 0 {
		return fail(domain.NewInvalidQuizRequestError(errs))
	}

	quiz, err := p.generator.GenerateQuiz(ctx, req)
	if err != nil {
		return fail(err)
	}
	res.Quiz = dto.NewQuizResponse(quiz)
	p.logger.Info("Quiz generated", zap.String("file", path), zap.String("topic", res.Topic), zap.Int("questions", len(quiz.Questions)))
	return res
}
