// Package uploader implements the compliance analyzer's upload flow: file
// selection with a PDF-only drop zone, then a bounded-retry submission under
// a single overall timeout.
package uploader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/backend"
	"github.com/BerylCAtieno/vakeel-gateway/internal/client"
	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sethvargo/go-retry"
)

type State int

const (
	Idle State = iota
	Dragging
	Uploading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Uploading:
		return "uploading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const pdfMIME = "application/pdf"

var (
	// ErrNotPDF is shown to the user verbatim.
	ErrNotPDF = errors.New("Please select a PDF file")
	ErrBusy   = errors.New("an upload is already in progress")
)

// TimeoutError reports that the whole submission ran out of time.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return "Request timed out after " + humanDuration(e.After)
}

type File struct {
	Name string
	Data []byte
}

// Submitter sends one upload attempt. *client.Client satisfies it.
type Submitter interface {
	SubmitCompliance(ctx context.Context, filename string, data []byte) (*backend.Response, error)
}

type Options struct {
	Timeout  time.Duration
	Attempts int
}

func DefaultOptions() Options {
	return Options{
		Timeout:  5 * time.Minute,
		Attempts: 3,
	}
}

// Flow is safe for concurrent use. Only one Submit runs at a time.
type Flow struct {
	submitter Submitter
	opts      Options
	logger    *utils.Logger

	mu      sync.Mutex
	state   State
	resting State
	file    *File
	err     error
	report  models.ComplianceReport
}

func New(submitter Submitter, opts Options, logger *utils.Logger) *Flow {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultOptions().Attempts
	}
	return &Flow{
		submitter: submitter,
		opts:      opts,
		logger:    logger,
		state:     Idle,
		resting:   Idle,
	}
}

func (f *Flow) DragOver() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Uploading || f.state == Dragging {
		return
	}
	f.resting = f.state
	f.state = Dragging
}

func (f *Flow) DragLeave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Dragging {
		f.state = f.resting
	}
}

// Drop accepts file only when its content sniffs as PDF. A rejected drop
// keeps the previously selected file.
func (f *Flow) Drop(file File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Uploading {
		return ErrBusy
	}
	if f.state == Dragging {
		f.state = f.resting
	}

	if !mimetype.Detect(file.Data).Is(pdfMIME) {
		f.state = Error
		f.err = ErrNotPDF
		return ErrNotPDF
	}

	f.file = &file
	f.err = nil
	f.state = Idle
	return nil
}

// Select mirrors the file picker, which trusts its accept filter and does
// no type check.
func (f *Flow) Select(file File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Uploading {
		return ErrBusy
	}
	f.file = &file
	f.err = nil
	f.state = Idle
	return nil
}

// Submit uploads the selected file. Up to Options.Attempts tries are made
// back to back, stopping at the first 2xx reply. Any failure is retried,
// including 4xx.
func (f *Flow) Submit(ctx context.Context) (models.ComplianceReport, error) {
	f.mu.Lock()
	if f.state == Uploading {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if f.file == nil {
		f.state = Error
		f.err = ErrNotPDF
		f.mu.Unlock()
		return nil, ErrNotPDF
	}
	file := *f.file
	f.state = Uploading
	f.err = nil
	f.report = nil
	f.mu.Unlock()

	report, err := f.submit(ctx, file)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = Error
		f.err = err
		return nil, err
	}
	f.state = Success
	f.report = report
	return report, nil
}

func (f *Flow) submit(parent context.Context, file File) (models.ComplianceReport, error) {
	ctx, cancel := context.WithTimeout(parent, f.opts.Timeout)
	defer cancel()

	resp, err := f.upload(ctx, file)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
			f.logger.Warn("Upload timed out", "filename", file.Name, "timeout", f.opts.Timeout)
			return nil, &TimeoutError{After: f.opts.Timeout}
		}
		return nil, err
	}

	var report models.ComplianceReport
	if err := json.Unmarshal(resp.Body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode compliance report: %w", err)
	}
	return report, nil
}

func (f *Flow) upload(ctx context.Context, file File) (*backend.Response, error) {
	noDelay := retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	backoff := retry.WithMaxRetries(uint64(f.opts.Attempts-1), noDelay)

	var (
		result  *backend.Response
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt++
		resp, err := f.submitter.SubmitCompliance(ctx, file.Name, file.Data)
		if err != nil {
			f.logger.Warn("Upload attempt failed", "attempt", attempt, "filename", file.Name, "error", err)
			return retry.RetryableError(err)
		}
		if !resp.OK() {
			f.logger.Warn("Upload attempt rejected", "attempt", attempt, "filename", file.Name, "status", resp.StatusCode)
			return retry.RetryableError(&client.HTTPError{StatusCode: resp.StatusCode})
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("Upload succeeded", "attempt", attempt, "filename", file.Name)
	return result, nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err is the error shown to the user, if any.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) File() *File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file
}

func (f *Flow) Report() models.ComplianceReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", n)
	case d >= time.Second && d%time.Second == 0:
		n := int(d / time.Second)
		if n == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", n)
	default:
		return d.String()
	}
}
