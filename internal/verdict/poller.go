// Package verdict polls a negotiation until the mediator publishes its
// verdict or the poll budget runs out.
package verdict

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

type View int

const (
	Loading View = iota
	Failed
	CompletedPending
	InProgress
	Ready
)

func (v View) String() string {
	switch v {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case CompletedPending:
		return "completed-without-verdict"
	case InProgress:
		return "in-progress"
	case Ready:
		return "completed-with-verdict"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

var stages = []string{
	"Initializing analysis...",
	"Processing negotiation data...",
	"Applying AI models...",
	"Evaluating negotiation strategies...",
	"Identifying key points...",
	"Generating verdict...",
}

type Fetcher interface {
	GetNegotiation(ctx context.Context, id string) (*models.Negotiation, error)
}

type Options struct {
	Interval time.Duration
	MaxTicks int
}

func DefaultOptions() Options {
	return Options{
		Interval: 5 * time.Second,
		MaxTicks: 12,
	}
}

// Snapshot is what a view renders at a given moment.
type Snapshot struct {
	View        View
	Ticks       int
	Polling     bool
	Progress    int
	Stage       string
	Negotiation *models.Negotiation
	Err         error
}

type Poller struct {
	fetcher Fetcher
	id      string
	opts    Options
	logger  *utils.Logger

	mu      sync.Mutex
	ticks   int
	polling bool
	last    *models.Negotiation
	err     error
}

func NewPoller(fetcher Fetcher, negotiationID string, opts Options, logger *utils.Logger) *Poller {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = def.MaxTicks
	}
	return &Poller{
		fetcher: fetcher,
		id:      negotiationID,
		opts:    opts,
		logger:  logger.With("negotiation_id", negotiationID),
		polling: true,
	}
}

// Run polls until the verdict arrives, MaxTicks polls have been made, or ctx
// is done. The first poll is immediate. onUpdate, if set, sees a snapshot
// after every poll.
func (p *Poller) Run(ctx context.Context, onUpdate func(Snapshot)) (Snapshot, error) {
	if !p.isPolling() {
		return p.Snapshot(), nil
	}

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		stop := p.poll(ctx)
		if onUpdate != nil {
			onUpdate(p.Snapshot())
		}
		if stop {
			return p.Snapshot(), nil
		}

		select {
		case <-ctx.Done():
			return p.Snapshot(), ctx.Err()
		case <-ticker.C:
		}
	}
}

// Retry is the "try again" action: the tick counter starts over and
// polling resumes.
func (p *Poller) Retry(ctx context.Context, onUpdate func(Snapshot)) (Snapshot, error) {
	p.Reset()
	return p.Run(ctx, onUpdate)
}

func (p *Poller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticks = 0
	p.polling = true
	p.err = nil
}

// poll makes one request and reports whether polling should stop.
func (p *Poller) poll(ctx context.Context) bool {
	negotiation, err := p.fetcher.GetNegotiation(ctx, p.id)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.ticks++
	if err != nil {
		p.err = err
		p.logger.Warn("Negotiation fetch failed", "tick", p.ticks, "error", err)
	} else {
		p.last = negotiation
		p.err = nil
		p.logger.Debug("Negotiation fetched",
			"tick", p.ticks,
			"status", negotiation.Status,
			"has_verdict", negotiation.Verdict != nil)
	}

	switch {
	case p.last.HasVerdict():
		p.logger.Info("Verdict found, stopping polling", "tick", p.ticks)
		p.polling = false
	case p.ticks >= p.opts.MaxTicks:
		p.logger.Info("Max poll count reached, stopping polling", "tick", p.ticks)
		p.polling = false
	}
	return !p.polling
}

func (p *Poller) isPolling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polling
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot{
		View:        p.view(),
		Ticks:       p.ticks,
		Polling:     p.polling,
		Progress:    progress(p.ticks, p.opts.MaxTicks),
		Stage:       stage(p.ticks),
		Negotiation: p.last,
		Err:         p.err,
	}
}

func (p *Poller) view() View {
	switch {
	case p.polling && (p.last == nil || p.last.Verdict == nil):
		return Loading
	case p.err != nil || p.last == nil:
		return Failed
	case p.last.Completed() && p.last.Verdict == nil:
		return CompletedPending
	case !p.last.Completed():
		return InProgress
	default:
		return Ready
	}
}

func progress(ticks, max int) int {
	pct := int(math.Round(float64(ticks) / float64(max) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

func stage(ticks int) string {
	i := ticks / 2
	if i >= len(stages) {
		i = len(stages) - 1
	}
	return stages[i]
}
