package ports

import (
	"context"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

// ChangeFeed delivers change notifications for a single shipment. The
// returned channel is closed once ctx is cancelled; consumers must not
// depend on which transport produced a notification.
type ChangeFeed interface {
	Subscribe(ctx context.Context, trackingCode string) (<-chan domain.ChangeNotification, error)
}

// ChangePublisher announces shipment changes to push subscribers.
type ChangePublisher interface {
	Publish(ctx context.Context, n domain.ChangeNotification) error
}
