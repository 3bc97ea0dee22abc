package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/internal/render"
	"github.com/rileyhilliard/vitals/internal/source"
)

// DefaultInterval is the live cycle period.
const DefaultInterval = 60 * time.Second

// DefaultRangeHours is the history window used until SetTimeRange is called.
const DefaultRangeHours = 24

// Indicator is the global health of the live cycle.
type Indicator int

const (
	// IndicatorPending means no live cycle has finished yet.
	IndicatorPending Indicator = iota
	IndicatorNominal
	IndicatorError
)

func (i Indicator) String() string {
	switch i {
	case IndicatorNominal:
		return "nominal"
	case IndicatorError:
		return "error"
	default:
		return "pending"
	}
}

// Options configures an Orchestrator.
type Options struct {
	Source  source.Source
	Palette render.Palette
	// Thresholds is the configured set. Payload thresholds are layered on top.
	Thresholds  metrics.ThresholdSet
	HistorySize int
	RangeHours  int
	Interval    time.Duration
	// Segments is the cell count of segmented bars.
	Segments int
	Logger   logger.Logger
	Now      func() time.Time
	// OnChange is called after any state change, outside the lock.
	OnChange func()
}

// Orchestrator owns the current snapshot, the thresholds and the sample
// buffers, and draws widgets onto the bound surfaces. All state is guarded
// by one mutex; fetches happen outside it.
type Orchestrator struct {
	src      source.Source
	pal      render.Palette
	base     metrics.ThresholdSet
	interval time.Duration
	segments int
	log      logger.Logger
	now      func() time.Time
	onChange func()

	mu          sync.Mutex
	bindings    Bindings
	snapshot    metrics.Snapshot
	hasSnapshot bool
	thresholds  metrics.ThresholdSet
	buffers     map[metrics.SeriesID]*metrics.SampleBuffer
	history     metrics.Batch
	indicator   Indicator
	lastErr     error
	historyErrs map[metrics.HistoryKind]error
	lastUpdated time.Time
	stats       metrics.Stats
	hours       int

	// Keys of the disk and container maps last drawn, so their surfaces
	// can be marked when the whole map fails.
	diskKeys, containerKeys []string

	// Sequence numbers: issued counts requests started, applied is the
	// newest request whose result reached the state.
	liveIssued, liveApplied uint64
	histIssued, histApplied map[metrics.HistoryKind]uint64
	histCancel              context.CancelFunc
}

// New creates an orchestrator. Surfaces are bound later by Initialize.
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	hours := opts.RangeHours
	if hours <= 0 {
		hours = DefaultRangeHours
	}
	segments := opts.Segments
	if segments <= 0 {
		segments = render.DefaultSegments
	}
	pal := opts.Palette
	if pal.Name == "" {
		pal = render.Synthwave
	}

	buffers := make(map[metrics.SeriesID]*metrics.SampleBuffer, len(metrics.AllSeries()))
	for _, id := range metrics.AllSeries() {
		buffers[id] = metrics.NewSampleBuffer(opts.HistorySize)
	}

	return &Orchestrator{
		src:         opts.Source,
		pal:         pal,
		base:        opts.Thresholds,
		interval:    interval,
		segments:    segments,
		log:         log,
		now:         now,
		onChange:    opts.OnChange,
		thresholds:  opts.Thresholds,
		buffers:     buffers,
		history:     make(metrics.Batch),
		historyErrs: make(map[metrics.HistoryKind]error),
		hours:       source.ClampHours(hours),
		histIssued:  make(map[metrics.HistoryKind]uint64),
		histApplied: make(map[metrics.HistoryKind]uint64),
	}
}

// Initialize binds the surfaces, draws the empty state and runs the first
// historical and live cycles. Fetch failures are recorded in the state,
// not returned.
func (o *Orchestrator) Initialize(ctx context.Context, b Bindings) {
	o.mu.Lock()
	o.bindings = b
	o.drawAll()
	o.mu.Unlock()
	o.changed()

	o.loadHistory(ctx)
	if err := o.RefreshNow(ctx); err != nil {
		o.log.Debug("initial live cycle failed: %v", err)
	}
}

// Rebind swaps the bindings, typically after the presentation resized its
// surfaces, and redraws everything from the current state.
func (o *Orchestrator) Rebind(b Bindings) {
	o.mu.Lock()
	o.bindings = b
	o.drawAll()
	o.mu.Unlock()
}

// Resize runs fn under the state lock, then redraws every widget. fn may
// resize bound surfaces in place.
func (o *Orchestrator) Resize(fn func()) {
	o.mu.Lock()
	fn()
	o.drawAll()
	o.mu.Unlock()
}

// View runs fn with a copy of the state while holding the lock, so fn can
// read the bound surfaces without racing a redraw.
func (o *Orchestrator) View(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.stateLocked())
}

// Run performs a live cycle every interval until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.mu.Lock()
			if o.histCancel != nil {
				o.histCancel()
			}
			o.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			if err := o.RefreshNow(ctx); err != nil && ctx.Err() == nil {
				o.log.Debug("live cycle failed: %v", err)
			}
		}
	}
}

// RefreshNow performs one live cycle. On failure the last good snapshot
// and buffers are kept, nothing is redrawn and the indicator turns to
// error. The returned error is informational.
func (o *Orchestrator) RefreshNow(ctx context.Context) error {
	o.mu.Lock()
	o.liveIssued++
	seq := o.liveIssued
	o.mu.Unlock()

	raw, err := o.src.Current(ctx)
	if err == nil {
		snap := metrics.NormalizeAt(raw, o.now())
		if !snap.Malformed {
			if o.applySnapshot(seq, snap) {
				o.refreshStats(ctx)
			}
			return nil
		}
		err = errors.New(errors.ErrData, "Backend sent an unreadable snapshot",
			"Check that the URL points at the telemetry API")
	}

	o.failLive(seq, err)
	return err
}

// OnSnapshot applies an already normalized snapshot as if a live cycle had
// just fetched it.
func (o *Orchestrator) OnSnapshot(snap metrics.Snapshot) {
	o.mu.Lock()
	o.liveIssued++
	seq := o.liveIssued
	o.mu.Unlock()
	o.applySnapshot(seq, snap)
}

// OnHistoricalBatch replaces the buffers of kind's series and redraws the
// time-series views. Live state is not touched.
func (o *Orchestrator) OnHistoricalBatch(kind metrics.HistoryKind, batch metrics.Batch) {
	o.mu.Lock()
	o.histIssued[kind]++
	seq := o.histIssued[kind]
	o.mu.Unlock()
	o.applyHistory(kind, seq, batch)
}

// SetTimeRange changes the history window and reloads it. A history fetch
// still running for the previous window is cancelled.
func (o *Orchestrator) SetTimeRange(ctx context.Context, hours int) {
	o.mu.Lock()
	o.hours = source.ClampHours(hours)
	o.mu.Unlock()
	o.changed()
	o.loadHistory(ctx)
}

// Hours returns the selected history window.
func (o *Orchestrator) Hours() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hours
}

func (o *Orchestrator) applySnapshot(seq uint64, snap metrics.Snapshot) bool {
	o.mu.Lock()
	if seq <= o.liveApplied {
		o.mu.Unlock()
		o.log.Debug("discarding stale snapshot #%d (have #%d)", seq, o.liveApplied)
		return false
	}
	o.liveApplied = seq

	o.snapshot = snap
	o.hasSnapshot = true
	o.thresholds = o.base.Apply(snap.Thresholds)

	for id, v := range snap.Values() {
		if buf, ok := o.buffers[id]; ok {
			buf.Push(metrics.Sample{Time: snap.Timestamp, Value: v})
		}
	}

	o.drawAll()
	o.lastUpdated = o.now()
	o.indicator = IndicatorNominal
	o.lastErr = nil
	o.mu.Unlock()

	o.log.Debug("live cycle #%d applied", seq)
	o.changed()
	return true
}

func (o *Orchestrator) failLive(seq uint64, err error) {
	o.mu.Lock()
	if seq < o.liveApplied {
		o.mu.Unlock()
		o.log.Debug("ignoring failure of superseded live cycle #%d", seq)
		return
	}
	o.indicator = IndicatorError
	o.lastErr = err
	o.mu.Unlock()

	o.log.Warn("live cycle failed, keeping last data: %v", err)
	o.changed()
}

func (o *Orchestrator) refreshStats(ctx context.Context) {
	raw, err := o.src.Stats(ctx)
	if err != nil {
		o.log.Debug("stats unavailable: %v", err)
		return
	}
	stats := metrics.NormalizeStats(raw)
	o.mu.Lock()
	o.stats = stats
	o.mu.Unlock()
}

// loadHistory runs the historical cycle for every history kind.
func (o *Orchestrator) loadHistory(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	o.mu.Lock()
	if o.histCancel != nil {
		o.histCancel()
	}
	o.histCancel = cancel
	hours := o.hours
	seqs := make(map[metrics.HistoryKind]uint64, len(metrics.HistoryKinds()))
	for _, kind := range metrics.HistoryKinds() {
		o.histIssued[kind]++
		seqs[kind] = o.histIssued[kind]
	}
	o.mu.Unlock()

	for _, kind := range metrics.HistoryKinds() {
		raw, err := o.src.History(ctx, kind, hours)
		if err != nil {
			if ctx.Err() != nil {
				o.log.Debug("%s history fetch for %dh superseded", kind, hours)
				return
			}
			o.failHistory(kind, seqs[kind], err)
			continue
		}
		batch, err := metrics.NormalizeHistory(raw, kind)
		if err != nil {
			o.failHistory(kind, seqs[kind], err)
			continue
		}
		o.applyHistory(kind, seqs[kind], batch)
	}
}

func (o *Orchestrator) failHistory(kind metrics.HistoryKind, seq uint64, err error) {
	o.mu.Lock()
	if seq < o.histApplied[kind] {
		o.mu.Unlock()
		o.log.Debug("ignoring failure of superseded %s history #%d", kind, seq)
		return
	}
	o.historyErrs[kind] = err
	o.mu.Unlock()
	o.log.Warn("%s history unavailable: %v", kind, err)
	o.changed()
}

func (o *Orchestrator) applyHistory(kind metrics.HistoryKind, seq uint64, batch metrics.Batch) bool {
	o.mu.Lock()
	if seq <= o.histApplied[kind] {
		o.mu.Unlock()
		o.log.Debug("discarding stale %s history #%d", kind, seq)
		return false
	}
	o.histApplied[kind] = seq

	for _, id := range kind.Series() {
		samples := batch[id]
		o.history[id] = samples
		o.buffers[id].ReplaceAll(samples)
	}
	delete(o.historyErrs, kind)
	o.drawSeries()
	o.plotCharts(kind)
	o.mu.Unlock()

	o.log.Debug("%s history #%d applied", kind, seq)
	o.changed()
	return true
}

func (o *Orchestrator) changed() {
	if o.onChange != nil {
		o.onChange()
	}
}
