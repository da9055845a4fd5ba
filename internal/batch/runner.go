// Package batch runs the extraction pipeline over every PDF in a directory
// with a fixed-size worker pool. Results are collected into a summary that
// is also written next to the outputs as batch_processing_summary.json.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wsekete/PDFParseV2/internal/export"
	"github.com/wsekete/PDFParseV2/internal/pdf"
)

// SummaryFileName is the report written into the output directory.
const SummaryFileName = "batch_processing_summary.json"

// maxWorkers caps the pool regardless of core count.
const maxWorkers = 8

// Runner drives batch extraction over a directory.
type Runner struct {
	service *pdf.Service
	log     *slog.Logger
	workers int
	format  string
}

// FileResult is the outcome for one document.
type FileResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path,omitempty"`
	FieldCount int    `json:"field_count"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Summary aggregates one batch run.
type Summary struct {
	Directory  string       `json:"directory"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMS int64        `json:"duration_ms"`
	Discovered int          `json:"discovered"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Canceled   int          `json:"canceled"`
	Results    []FileResult `json:"results"`
}

// NewRunner creates a batch runner. workers of 0 means one per CPU, capped;
// format selects the per-file output (csv or json).
func NewRunner(service *pdf.Service, log *slog.Logger, workers int, format string) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if format != "json" {
		format = "csv"
	}
	return &Runner{
		service: service,
		log:     log,
		workers: workers,
		format:  format,
	}
}

// Run discovers PDFs under dir, processes them concurrently and writes the
// summary report into outputDir (dir itself when empty). Cancellation is
// cooperative between documents; a document being processed is finished
// before its worker exits.
func (r *Runner) Run(ctx context.Context, dir, outputDir string) (*Summary, error) {
	if outputDir == "" {
		outputDir = dir
	} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	files, err := Discover(dir, r.service)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &Summary{
		Directory:  dir,
		StartedAt:  start,
		Discovered: len(files),
	}

	queue := make(chan string)
	results := make(chan FileResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			log := r.log.With("worker", worker)
			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-queue:
					if !ok {
						return
					}
					results <- r.processOne(log, path, outputDir)
				}
			}
		}(i)
	}

	queued := 0
feed:
	for _, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case queue <- path:
			queued++
		}
	}
	close(queue)
	wg.Wait()
	close(results)

	for res := range results {
		if res.Error != "" {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].Path < summary.Results[j].Path
	})
	summary.Canceled = len(files) - summary.Succeeded - summary.Failed
	summary.DurationMS = time.Since(start).Milliseconds()

	if err := r.writeSummary(outputDir, summary); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// processOne extracts one document and writes its report file.
func (r *Runner) processOne(log *slog.Logger, path, outputDir string) FileResult {
	start := time.Now()
	log = log.With("file", path)
	log.Info("processing document")

	result := FileResult{Path: path}
	extracted, err := r.service.ExtractFields(pdf.ExtractFieldsRequest{Path: path})
	if err != nil {
		log.Error("extraction failed", "error", err)
		result.Error = err.Error()
		result.DurationMS = time.Since(start).Milliseconds()
		return result
	}
	result.FieldCount = extracted.FieldCount

	outPath := r.outputPath(outputDir, path)
	f, err := os.Create(outPath)
	if err != nil {
		result.Error = fmt.Sprintf("creating %s: %v", outPath, err)
		result.DurationMS = time.Since(start).Milliseconds()
		return result
	}
	defer f.Close()

	switch r.format {
	case "json":
		err = export.WriteJSON(f, extracted)
	default:
		err = export.WriteCSV(f, extracted.Fields)
	}
	if err != nil {
		result.Error = err.Error()
	} else {
		result.OutputPath = outPath
		log.Info("document processed", "fields", result.FieldCount,
			"output", outPath)
	}
	result.DurationMS = time.Since(start).Milliseconds()
	return result
}

func (r *Runner) outputPath(outputDir, docPath string) string {
	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	ext := ".csv"
	if r.format == "json" {
		ext = ".json"
	}
	return filepath.Join(outputDir, stem+"_fields"+ext)
}

func (r *Runner) writeSummary(outputDir string, summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch summary: %w", err)
	}
	path := filepath.Join(outputDir, SummaryFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing batch summary: %w", err)
	}
	return nil
}
