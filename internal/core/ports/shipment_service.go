package ports

import (
	"context"
	"time"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

// CreateShipmentInput carries all data needed to create a new shipment.
// Pointer fields are optional.
type CreateShipmentInput struct {
	TrackingCode       string // generated when empty
	Sender             domain.Party
	Receiver           domain.Party
	Origin             domain.Place
	Destination        domain.Place
	PackageDescription string
	PackageWeightKg    *float64
	Status             domain.ShipmentStatus // defaults to order_received
	CurrentLocation    string
	EstimatedDelivery  *time.Time
	HeldByCustoms      bool
	Notes              string
	Currency           string // defaults to USD
	PackageValue       *float64
	ShippingFee        *float64
	DeliveryDays       *int
}

// UpdateShipmentInput is a partial update: nil fields are left unchanged.
type UpdateShipmentInput struct {
	Sender             *domain.Party
	Receiver           *domain.Party
	Origin             *domain.Place
	Destination        *domain.Place
	PackageDescription *string
	PackageWeightKg    *float64
	Status             *domain.ShipmentStatus
	CurrentLocation    *string
	EstimatedDelivery  *time.Time
	HeldByCustoms      *bool
	Notes              *string
	Currency           *string
	PackageValue       *float64
	ShippingFee        *float64
	DeliveryDays       *int

	// Location and Description describe the timeline entry appended when
	// Status changes. Both are optional.
	EventLocation    string
	EventDescription string
}

// AppendTimelineInput is an administrative timeline entry.
type AppendTimelineInput struct {
	Status      domain.ShipmentStatus
	Location    string
	Description string
}

// TrackingView is what a customer sees for a tracking code.
type TrackingView struct {
	Shipment *domain.Shipment
	Timeline []domain.TimelineEvent
	Progress domain.Progress
}

// ListShipmentsInput carries the parameters for the admin list endpoint.
type ListShipmentsInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []*domain.Shipment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	Track(ctx context.Context, trackingCode string) (*TrackingView, error)
	GetShipment(ctx context.Context, id string) (*domain.Shipment, error)
	ListShipments(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
	UpdateShipment(ctx context.Context, id string, input UpdateShipmentInput) (*domain.Shipment, error)
	DeleteShipment(ctx context.Context, id string) error
	AppendTimelineEvent(ctx context.Context, id string, input AppendTimelineInput) (*domain.TimelineEvent, error)
	ListTimeline(ctx context.Context, id string) ([]domain.TimelineEvent, error)
}
