package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/config"
	"github.com/alnah/go-tccexport/internal/fileutil"
	"github.com/alnah/go-tccexport/internal/hints"
)

// maxWorkers caps the worker count.
const maxWorkers = 32

// ExportJob is one manuscript file to export in one format.
type ExportJob struct {
	InputPath string
	Format    tccexport.Format
}

// ExportResult holds the outcome of a single export.
type ExportResult struct {
	InputPath  string
	OutputPath string
	Format     tccexport.Format
	Err        error
	Duration   time.Duration
}

// runExport orchestrates the export command.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.suffix != "" {
		cfg.Filename.Suffix = flags.suffix
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	formats, err := resolveFormats(flags.formats, cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, env)
	factory, err := newExporterFactory(cfg, logger, env, flags.verify)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	if flags.project != "" {
		if len(positional) > 0 {
			return fmt.Errorf("%w: --project takes no manuscript files", ErrUsage)
		}
		if outputDir == "" {
			outputDir = "."
		}
		results := exportProject(ctx, flags.project, storePath(flags.db, cfg), outputDir, formats, factory)
		return reportResults(results, flags.common, env)
	}

	files, err := discoverManuscripts(positional)
	if err != nil {
		return err
	}

	jobs := make([]ExportJob, 0, len(files)*len(formats))
	for _, file := range files {
		for _, f := range formats {
			jobs = append(jobs, ExportJob{InputPath: file, Format: f})
		}
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := exportBatch(ctx, jobs, workers, func(ctx context.Context, job ExportJob) ExportResult {
		return exportFile(ctx, factory, job, outputDir)
	})
	return reportResults(results, flags.common, env)
}

// resolveFormats expands the --format values, falling back to the config.
// "all" selects every format.
func resolveFormats(values []string, cfg *config.Config) ([]tccexport.Format, error) {
	if len(values) == 0 {
		values = cfg.Output.Formats
	}
	if len(values) == 0 {
		return []tccexport.Format{tccexport.FormatDOCX, tccexport.FormatPDF}, nil
	}

	seen := make(map[tccexport.Format]bool)
	var out []tccexport.Format
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), "all") {
			return tccexport.Formats, nil
		}
		f, err := tccexport.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForUnknownFormat(formatNames()))
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func formatNames() []string {
	names := make([]string, len(tccexport.Formats))
	for i, f := range tccexport.Formats {
		names[i] = string(f)
	}
	return names
}

// resolveOutputDir picks the output directory: flag, then config. Empty
// means next to each input file.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers rejects negative or excessive worker counts.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > TCCEXPORT_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	return max(1, min(runtime.GOMAXPROCS(0), 8))
}

// exportBatch runs jobs with at most workers in flight. Results keep the
// job order; one failure does not stop the others.
func exportBatch(ctx context.Context, jobs []ExportJob, workers int, export func(context.Context, ExportJob) ExportResult) []ExportResult {
	if len(jobs) == 0 {
		return nil
	}

	results := make([]ExportResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(max(1, workers))

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ExportResult{InputPath: job.InputPath, Format: job.Format, Err: err}
				return nil
			}
			results[i] = export(ctx, job)
			return nil
		})
	}
	_ = g.Wait() // workers report through results

	return results
}

// exportFile reads one manuscript and writes one artifact.
func exportFile(ctx context.Context, factory *exporterFactory, job ExportJob, outputDir string) ExportResult {
	start := time.Now()
	result := ExportResult{InputPath: job.InputPath, Format: job.Format}

	m, err := readManuscript(job.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(job.InputPath)
	}
	result.OutputPath, result.Err = exportTo(ctx, factory, tccexport.StaticSource(m), m, job.Format, dir)
	result.Duration = time.Since(start)
	return result
}

// exportProject exports a stored project in every format.
func exportProject(ctx context.Context, id, dbPath, outputDir string, formats []tccexport.Format, factory *exporterFactory) []ExportResult {
	label := "project " + id
	fail := func(err error) []ExportResult {
		return []ExportResult{{InputPath: label, Err: err}}
	}

	s, err := openStore(dbPath)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	p, err := s.Get(ctx, id)
	if err != nil {
		return fail(err)
	}

	results := make([]ExportResult, 0, len(formats))
	for _, f := range formats {
		start := time.Now()
		out, err := exportTo(ctx, factory, p, p.Manuscript, f, outputDir)
		results = append(results, ExportResult{
			InputPath:  label,
			OutputPath: out,
			Format:     f,
			Err:        err,
			Duration:   time.Since(start),
		})
	}
	return results
}

// exportTo exports src and writes the artifact into dir. m selects the
// exporter (its Style may name a profile).
func exportTo(ctx context.Context, factory *exporterFactory, src tccexport.ManuscriptSource, m tccexport.Manuscript, f tccexport.Format, dir string) (string, error) {
	exporter, err := factory.forManuscript(m)
	if err != nil {
		return "", err
	}

	art, err := exporter.ExportSource(ctx, f, src)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: creating output directory: %w%s", ErrWriteArtifact, err, hints.ForOutputDirectory())
	}
	path := filepath.Join(dir, art.Filename)
	if err := fileutil.WriteFileAtomic(path, art.Data, filePermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	return path, nil
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed exports.
func countResults(results []ExportResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults prints the results and returns an error when any export
// failed. The error wraps the first failure so the exit code reflects it.
func reportResults(results []ExportResult, flags commonFlags, env *Environment) error {
	summary := countResults(results)

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if r.Format != "" {
				fmt.Fprintf(env.Stderr, "FAILED %s (%s): %v\n", r.InputPath, r.Format, r.Err)
			} else {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if flags.quiet {
			continue
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d export(s) failed: %w", summary.Failed, firstErr)
	}
	return nil
}
