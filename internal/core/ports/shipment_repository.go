package ports

import (
	"context"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

// ListShipmentsFilter carries all query parameters for listing shipments.
type ListShipmentsFilter struct {
	Status string // optional: canonical status key
	Search string // optional: partial match on tracking_code, sender or receiver name
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	// Create inserts s and assigns s.ID. A tracking code collision yields
	// domain.ErrDuplicateTrackingCode.
	Create(ctx context.Context, s *domain.Shipment) error
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
	// List returns a page of shipments, newest first, and the total count.
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.Shipment, int64, error)
	// Update replaces the stored document with s (matched by s.ID).
	Update(ctx context.Context, s *domain.Shipment) error
	Delete(ctx context.Context, id string) error
}

// TimelineRepository persists the append-only shipment history.
type TimelineRepository interface {
	Append(ctx context.Context, event *domain.TimelineEvent) error
	// ListByShipment returns events newest first. limit <= 0 means no limit.
	ListByShipment(ctx context.Context, shipmentID string, limit int) ([]domain.TimelineEvent, error)
	DeleteByShipment(ctx context.Context, shipmentID string) error
}
