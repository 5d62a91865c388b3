package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/api/metrics"
	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

var errNoFeeds = errors.New("no change feeds configured")

// MergedFeed fans in several feeds so consumers see a single stream
// regardless of transport.
type MergedFeed struct {
	feeds []ports.ChangeFeed
	log   zerolog.Logger
}

func NewMergedFeed(log zerolog.Logger, feeds ...ports.ChangeFeed) *MergedFeed {
	return &MergedFeed{feeds: feeds, log: log}
}

// Subscribe succeeds as long as one underlying feed does. The returned
// channel closes after every underlying subscription has ended.
func (m *MergedFeed) Subscribe(ctx context.Context, trackingCode string) (<-chan domain.ChangeNotification, error) {
	var (
		inputs  []<-chan domain.ChangeNotification
		lastErr error
	)
	for _, f := range m.feeds {
		ch, err := f.Subscribe(ctx, trackingCode)
		if err != nil {
			m.log.Warn().Err(err).Str("tracking_code", trackingCode).Msg("feed subscription failed")
			lastErr = err
			continue
		}
		inputs = append(inputs, ch)
	}
	if len(inputs) == 0 {
		if lastErr == nil {
			lastErr = errNoFeeds
		}
		return nil, lastErr
	}

	out := make(chan domain.ChangeNotification, subscriberBuffer)
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in <-chan domain.ChangeNotification) {
			defer wg.Done()
			for n := range in {
				metrics.NotificationsDeliveredTotal.WithLabelValues(n.Source).Inc()
				select {
				case out <- n:
				case <-ctx.Done():
					// keep draining so the producer can exit
				}
			}
		}(in)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}
