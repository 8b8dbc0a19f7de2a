package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	stitchjob "github.com/alnah/go-stitchjob"
	"github.com/alnah/go-stitchjob/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrOutputConflict = errors.New("conflicting output paths")
	ErrBatchFailed    = errors.New("some conversions failed")
)

// maxAutoWorkers caps the automatic worker count.
const maxAutoWorkers = 8

// job is one source to convert.
type job struct {
	Input  string
	Output string // empty = beside the input
}

// jobResult holds the outcome of a single conversion.
type jobResult struct {
	Input    string
	Result   *stitchjob.Result
	Err      error
	Duration time.Duration
}

// convertFunc converts one job.
type convertFunc func(ctx context.Context, j job) (*stitchjob.Result, error)

// planJobs maps inputs to output paths. output is the -o flag, dir the
// configured output directory. An output ending in .tex names the file and
// needs a single input; anything else is a directory.
func planJobs(inputs []string, output, dir string) ([]job, error) {
	if strings.EqualFold(filepath.Ext(output), ".tex") {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("%w: -o %s names one file but %d inputs were given", ErrOutputConflict, output, len(inputs))
		}
		return []job{{Input: inputs[0], Output: output}}, nil
	}
	if output != "" {
		dir = output
	}

	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		j := job{Input: in}
		if dir != "" {
			j.Output = filepath.Join(dir, filepath.Base(fileutil.ReplaceExt(in, ".tex")))
		}
		key := filepath.Clean(j.Output)
		if j.Output == "" {
			key = filepath.Clean(fileutil.ReplaceExt(in, ".tex"))
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, in, key)
		}
		seen[key] = in
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// convertBatch processes jobs concurrently with the given number of workers.
// Results keep the order of jobs.
func convertBatch(ctx context.Context, workers int, jobs []job, convert convertFunc) []jobResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(jobs))
	results := make([]jobResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = jobResult{Input: jobs[idx].Input, Err: ctx.Err()}
					continue
				}
				start := time.Now()
				res, err := convert(ctx, jobs[idx])
				results[idx] = jobResult{Input: jobs[idx].Input, Result: res, Err: err, Duration: time.Since(start)}
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// firstError returns the first failure, wrapped with the batch totals when
// more than one job ran.
func firstError(results []jobResult) error {
	failed := 0
	var first error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
		}
	}
	if first == nil {
		return nil
	}
	if len(results) == 1 {
		return first
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrBatchFailed, failed, len(results), first)
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > STITCH_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers, envWorkers int, logger *slog.Logger) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	return min(max(runtime.GOMAXPROCS(0), 1), maxAutoWorkers)
}
