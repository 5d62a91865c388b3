package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/api/metrics"
	"github.com/swiftex/tracking-service/internal/core/domain"
)

const (
	defaultPollInterval = 15 * time.Second
	pollTimeout         = 10 * time.Second
)

// ShipmentLookup is the read the poll feed needs from the shipment store.
type ShipmentLookup interface {
	FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
}

type watcher struct {
	code     string
	lastSeen time.Time
	deleted  bool
	ch       chan domain.ChangeNotification
}

// PollFeed detects changes by re-reading watched shipments on a fixed
// interval. All subscriptions share a single scheduled job, which stops
// with the feed.
type PollFeed struct {
	repo     ShipmentLookup
	interval time.Duration
	log      zerolog.Logger
	cron     *cron.Cron

	mu       sync.Mutex
	nextID   int
	watchers map[int]*watcher
}

func NewPollFeed(repo ShipmentLookup, interval time.Duration, log zerolog.Logger) *PollFeed {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &PollFeed{
		repo:     repo,
		interval: interval,
		log:      log,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		watchers: make(map[int]*watcher),
	}
}

// Start schedules the poll job. ctx bounds each sweep.
func (f *PollFeed) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", f.interval)
	if _, err := f.cron.AddFunc(spec, func() { f.poll(ctx) }); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}
	f.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (f *PollFeed) Stop() {
	<-f.cron.Stop().Done()
}

func (f *PollFeed) Subscribe(ctx context.Context, trackingCode string) (<-chan domain.ChangeNotification, error) {
	s, err := f.repo.FindByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, err
	}

	w := &watcher{
		code:     trackingCode,
		lastSeen: s.UpdatedAt,
		ch:       make(chan domain.ChangeNotification, 1),
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.watchers[id] = w
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.watchers, id)
		close(w.ch)
		f.mu.Unlock()
	}()

	return w.ch, nil
}

// Watching reports the number of live subscriptions.
func (f *PollFeed) Watching() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers)
}

// poll re-reads every watched shipment once per distinct tracking code.
func (f *PollFeed) poll(ctx context.Context) {
	start := time.Now()
	defer func() { metrics.PollDuration.Observe(time.Since(start).Seconds()) }()

	f.mu.Lock()
	codes := make(map[string]struct{}, len(f.watchers))
	for _, w := range f.watchers {
		if !w.deleted {
			codes[w.code] = struct{}{}
		}
	}
	f.mu.Unlock()

	current := make(map[string]*domain.Shipment, len(codes))
	for code := range codes {
		if ctx.Err() != nil {
			return
		}
		lookupCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		s, err := f.repo.FindByTrackingCode(lookupCtx, code)
		cancel()
		switch {
		case errors.Is(err, domain.ErrShipmentNotFound):
			current[code] = nil
		case err != nil:
			f.log.Warn().Err(err).Str("tracking_code", code).Msg("poll lookup failed")
		default:
			current[code] = s
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.watchers {
		s, ok := current[w.code]
		if !ok || w.deleted {
			continue
		}
		if s == nil {
			w.deleted = true
			f.emit(w, domain.ChangeNotification{
				TrackingCode: w.code,
				Kind:         domain.ChangeShipmentDeleted,
				At:           time.Now().UTC(),
				Source:       domain.SourcePoll,
			})
			continue
		}
		if s.UpdatedAt.After(w.lastSeen) {
			w.lastSeen = s.UpdatedAt
			f.emit(w, domain.ChangeNotification{
				TrackingCode: w.code,
				ShipmentID:   s.ID,
				Kind:         domain.ChangeShipmentUpdated,
				Status:       s.Status,
				At:           s.UpdatedAt,
				Source:       domain.SourcePoll,
			})
		}
	}
}

// emit never blocks the sweep. A notification only asks the subscriber to
// re-read, so one pending notification is as good as several.
func (f *PollFeed) emit(w *watcher, n domain.ChangeNotification) {
	select {
	case w.ch <- n:
	default:
	}
}
