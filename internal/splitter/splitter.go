// Package splitter turns a combined multi-storm best-track file into one
// file per storm block.
package splitter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
	"github.com/couchcryptid/storm-track-splitter/internal/observability"
)

// ErrOrphanLine marks a record encountered before any storm header in
// strict mode.
var ErrOrphanLine = errors.New("record before first storm header")

// Announcer publishes a notification for each completed storm file.
type Announcer interface {
	Announce(ctx context.Context, file besttrack.StormFile) error
}

// Options controls a split run.
type Options struct {
	// OutDir is the directory receiving per-storm files. Created
	// recursively if missing.
	OutDir string

	// Append opens per-storm files in append mode instead of truncating.
	// The original tool truncates, silently losing earlier lines when the
	// same storm identity recurs non-contiguously; append mode is the safe
	// alternative.
	Append bool

	// Strict makes lines before the first storm header fatal. When false
	// such lines are logged, counted, and discarded.
	Strict bool
}

// Summary reports what a split run produced.
type Summary struct {
	Storms      int
	Lines       int
	OrphanLines int
	Files       []besttrack.StormFile
}

// Splitter streams a best-track file into per-storm output files. All I/O
// failures are fatal to the run; partial output is left in place.
type Splitter struct {
	opts       Options
	announcer  Announcer
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
	stormsDone atomic.Int64
	linesDone  atomic.Int64
}

// New creates a Splitter. Pass a nil announcer to disable Kafka
// announcements.
func New(opts Options, announcer Announcer, logger *slog.Logger, metrics *observability.Metrics) *Splitter {
	return &Splitter{
		opts:      opts,
		announcer: announcer,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the run has completed at least one storm
// file.
func (s *Splitter) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no storm file completed yet")
	}
	return nil
}

// Progress reports storms completed and lines written so far. Safe to call
// while a run is in flight.
func (s *Splitter) Progress() (storms, lines int) {
	return int(s.stormsDone.Load()), int(s.linesDone.Load())
}

// outFile is the single active output target. Ownership stays inside Split;
// nothing observes or mutates it concurrently.
type outFile struct {
	header besttrack.Header
	path   string
	f      *os.File
	w      *bufio.Writer
	lines  int
}

func (o *outFile) close() error {
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("flush %s: %w", o.path, err)
	}
	if err := o.f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", o.path, err)
	}
	return nil
}

// Split reads inputPath line by line and writes each storm block, header
// included, to its own file under OutDir. Lines are copied byte-for-byte
// with their original terminators.
func (s *Splitter) Split(ctx context.Context, inputPath string) (Summary, error) {
	s.metrics.RunActive.Set(1)
	defer s.metrics.RunActive.Set(0)

	in, err := os.Open(inputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(s.opts.OutDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	s.logger.Info("splitting best-track file",
		"input", inputPath,
		"out_dir", s.opts.OutDir,
		"append", s.opts.Append,
	)

	var (
		summary Summary
		current *outFile
		r       = bufio.NewReader(in)
		lineNum = 0
	)

	// closeCurrent finishes the active storm file and records it.
	closeCurrent := func() error {
		if current == nil {
			return nil
		}
		if err := current.close(); err != nil {
			return err
		}
		file := besttrack.StormFile{
			Header: current.header,
			Path:   current.path,
			Lines:  current.lines,
		}
		summary.Storms++
		summary.Files = append(summary.Files, file)
		s.metrics.StormsSplit.Inc()
		s.metrics.StormFileLines.Observe(float64(file.Lines))
		s.stormsDone.Add(1)
		s.ready.Store(true)
		s.announce(ctx, file)
		current = nil
		return nil
	}

	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return summary, fmt.Errorf("read input: %w", readErr)
		}
		if line != "" {
			lineNum++
			if header, ok := besttrack.ParseHeader(line); ok {
				if err := closeCurrent(); err != nil {
					return summary, err
				}
				next, err := s.openStormFile(header)
				if err != nil {
					return summary, fmt.Errorf("line %d: %w", lineNum, err)
				}
				current = next
			}

			if current == nil {
				if s.opts.Strict {
					return summary, fmt.Errorf("line %d: %w", lineNum, ErrOrphanLine)
				}
				summary.OrphanLines++
				s.metrics.OrphanLines.Inc()
				s.logger.Warn("discarding record before first storm header", "line", lineNum)
			} else {
				if _, err := current.w.WriteString(line); err != nil {
					return summary, fmt.Errorf("write %s: %w", current.path, err)
				}
				current.lines++
				summary.Lines++
				s.linesDone.Add(1)
				s.metrics.LinesWritten.Inc()
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if err := closeCurrent(); err != nil {
		return summary, err
	}

	s.logger.Info("split complete",
		"storms", summary.Storms,
		"lines", summary.Lines,
		"orphan_lines", summary.OrphanLines,
	)
	return summary, nil
}

// openStormFile creates (or, in append mode, reopens) the output file for a
// storm header. The default truncate-on-open matches the original tool: a
// repeated storm identity starts its file over.
func (s *Splitter) openStormFile(header besttrack.Header) (*outFile, error) {
	name, err := header.Filename()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.opts.OutDir, name)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if s.opts.Append {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s.logger.Debug("new storm block", "storm_id", header.ID, "name", header.Name, "path", path)
	return &outFile{
		header: header,
		path:   path,
		f:      f,
		w:      bufio.NewWriter(f),
	}, nil
}

// announce publishes a storm-file notification. Failures are logged and
// counted but never abort the run; the files on disk stay authoritative.
func (s *Splitter) announce(ctx context.Context, file besttrack.StormFile) {
	if s.announcer == nil {
		return
	}
	if err := s.announcer.Announce(ctx, file); err != nil {
		s.metrics.AnnounceFailures.Inc()
		s.logger.Warn("announce storm file failed",
			"error", err,
			"storm_id", file.Header.ID,
			"path", file.Path,
		)
		return
	}
	s.metrics.AnnouncementsPublished.Inc()
}
