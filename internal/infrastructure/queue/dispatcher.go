package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/api/metrics"
	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrQueueFull is returned by Publish when the shard for a tracking code
// cannot take more notifications.
var ErrQueueFull = errors.New("dispatch queue full")

// Dispatcher hands change notifications to a downstream publisher off the
// request path. Notifications are sharded by tracking code so that changes
// to one shipment are published in the order they happened.
type Dispatcher struct {
	workers []chan domain.ChangeNotification
	next    ports.ChangePublisher
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, next ports.ChangePublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ChangeNotification, numWorkers),
		next:    next,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ChangeNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish queues n for its shard without blocking.
func (d *Dispatcher) Publish(ctx context.Context, n domain.ChangeNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	metrics.ShipmentChangesTotal.WithLabelValues(string(n.Kind)).Inc()

	idx := d.shardIndex(n.TrackingCode)
	select {
	case d.workers[idx] <- n:
		metrics.DispatchQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.NotificationsPublishedTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a tracking code deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingCode string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingCode))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ChangeNotification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.DispatchQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			// The request that produced n may be gone; publish on the
			// worker's own context.
			if err := d.next.Publish(ctx, n); err != nil {
				metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("tracking_code", n.TrackingCode).
					Str("kind", string(n.Kind)).
					Int("worker_id", id).
					Msg("change publish failed")
				continue
			}
			metrics.NotificationsPublishedTotal.WithLabelValues("ok").Inc()
		}
	}
}
