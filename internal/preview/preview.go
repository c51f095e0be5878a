package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docspreview/internal/compiler"
	"docspreview/internal/site"

	"golang.org/x/sync/errgroup"
)

// ErrMissingArguments is returned when the input file or output directory is absent.
var ErrMissingArguments = errors.New("missing input json or output dir")

// Params are the values given on the command line.
type Params struct {
	DocsInput  string
	DocsOutput string
	Debug      bool
}

// Validate reports ErrMissingArguments when either path is empty.
func (p Params) Validate() error {
	if p.DocsInput == "" || p.DocsOutput == "" {
		return ErrMissingArguments
	}
	return nil
}

// Builder compiles the documentation app into outputFile.
type Builder interface {
	Run(ctx context.Context, outputFile string, debug bool) (*compiler.Result, error)
}

// Report collects what a run produced. BuildErr and PageErr are independent:
// either task may fail while the other succeeds.
type Report struct {
	OutputDir  string
	CreatedDir bool
	IndexPath  string
	Build      *compiler.Result
	BuildErr   error
	PageErr    error
}

// Runner produces the preview site for one set of Params.
type Runner struct {
	builder Builder
	log     *log.Logger
}

// NewRunner returns a Runner that builds with b and logs progress lines to out.
func NewRunner(b Builder, out io.Writer) *Runner {
	return &Runner{
		builder: b,
		log:     log.New(out, "", 0),
	}
}

// Run builds the app and writes index.html into the output directory.
// The build and the page are produced concurrently and both are awaited.
func (r *Runner) Run(ctx context.Context, p Params) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	inputFile, err := filepath.Abs(p.DocsInput)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p.DocsInput, err)
	}
	outputDir, err := filepath.Abs(p.DocsOutput)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p.DocsOutput, err)
	}

	report := &Report{OutputDir: outputDir}

	report.CreatedDir, err = site.EnsureDir(outputDir)
	if err != nil {
		return report, err
	}
	if report.CreatedDir {
		r.log.Printf("📂 Created output directory: %s", outputDir)
	}

	// Neither task cancels the other, so a plain Group rather than WithContext.
	var g errgroup.Group
	g.Go(func() error {
		report.Build, report.BuildErr = r.build(ctx, outputDir, p.Debug)
		return report.BuildErr
	})
	g.Go(func() error {
		report.IndexPath, report.PageErr = r.writePage(inputFile, outputDir)
		return report.PageErr
	})

	if err := g.Wait(); err != nil {
		return report, errors.Join(report.BuildErr, report.PageErr)
	}
	return report, nil
}

func (r *Runner) build(ctx context.Context, outputDir string, debug bool) (*compiler.Result, error) {
	appFile := filepath.Join(outputDir, site.AppFile)
	r.log.Printf("🚀 Compiling %s (debug=%t)...", appFile, debug)

	res, err := r.builder.Run(ctx, appFile, debug)
	if err != nil {
		return res, err
	}

	if out := strings.TrimSpace(string(res.Stdout)); out != "" {
		r.log.Println(out)
	}
	r.log.Printf("✅ Compiled %s in %v (dir %s)", appFile, res.Duration, res.Dir)
	return res, nil
}

func (r *Runner) writePage(inputFile, outputDir string) (string, error) {
	docsJSON, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read docs: %w", err)
	}

	path, err := site.WriteIndex(outputDir, docsJSON)
	if err != nil {
		return "", err
	}
	r.log.Printf("📝 Wrote %s", path)
	return path, nil
}
