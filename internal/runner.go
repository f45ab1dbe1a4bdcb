package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Job describes one cleaning run over a single ledger file
type Job struct {
	// File is the path, optionally prefixed with a format ("csv:ledger.txt")
	File string
	// Source is the format used when File has no prefix; empty means infer from extension
	Source      string
	ReadOptions ReadOptions
	Columns     ColumnConfig
	// AutoDetect guesses columns from header text before scanning
	AutoDetect bool
	Logger     zerolog.Logger
}

// Result is handed off once a run finishes. On error Records is nil.
type Result struct {
	RunID    string
	Records  []Record
	Rows     int
	Columns  ColumnConfig
	Detected DetectedColumns
	Elapsed  time.Duration
	Err      error
}

// Run is a cleaning job executing in the background. The scan owns all
// of its state; the caller only sees progress values and the final Result.
type Run struct {
	ID       string
	progress chan float64
	done     chan struct{}
	result   Result
}

// Start launches the job in its own goroutine and returns immediately.
// Cancelling ctx stops the scan between rows.
func Start(ctx context.Context, job Job) *Run {
	r := &Run{
		ID:       uuid.New().String(),
		progress: make(chan float64, 1),
		done:     make(chan struct{}),
	}
	go r.run(ctx, job)
	return r
}

// Progress delivers scan progress between 0 and 1. Intermediate values may
// be skipped when the receiver is slow; the channel is closed when the scan ends.
func (r *Run) Progress() <-chan float64 {
	return r.progress
}

// Done is closed once the Result is available
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run finishes and returns its Result
func (r *Run) Wait() Result {
	<-r.done
	return r.result
}

func (r *Run) run(ctx context.Context, job Job) {
	start := time.Now()
	log := job.Logger.With().Str("run", r.ID).Logger()

	res := Result{RunID: r.ID, Columns: job.Columns}
	defer func() {
		res.Elapsed = time.Since(start)
		r.result = res
		close(r.progress)
		close(r.done)
	}()

	reader, path, err := ResolveReader(job.File, job.Source)
	if err != nil {
		res.Err = err
		return
	}

	rows, err := reader.Read(path, job.ReadOptions)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		return
	}
	res.Rows = len(rows)
	log.Debug().Str("file", path).Int("rows", len(rows)).Msg("Loaded sheet")

	if job.AutoDetect {
		res.Columns, res.Detected = AutoDetectColumns(rows, job.Columns)
		log.Info().Msgf("Detected: %s", res.Detected)
	}

	records, err := Normalize(ctx, rows, res.Columns, NormalizeOptions{
		Logger:   log,
		Progress: r.report,
	})
	if err != nil {
		res.Err = err
		return
	}
	res.Records = records
}

// report publishes the latest progress value without ever blocking the scan
func (r *Run) report(fraction float64) {
	select {
	case r.progress <- fraction:
		return
	default:
	}
	// replace the stale value nobody has read yet
	select {
	case <-r.progress:
	default:
	}
	select {
	case r.progress <- fraction:
	default:
	}
}
