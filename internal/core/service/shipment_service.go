package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

const (
	defaultPageLimit    = 20
	maxPageLimit        = 100
	trackingTimelineMax = 50
	trackingCodePrefix  = "SX"
	trackingCodeLength  = 8
	trackingAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	createAttempts      = 3
)

type ShipmentService struct {
	repo      ports.ShipmentRepository
	timeline  ports.TimelineRepository
	publisher ports.ChangePublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewShipmentService(
	repo ports.ShipmentRepository,
	timeline ports.TimelineRepository,
	publisher ports.ChangePublisher,
	logger zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		repo:      repo,
		timeline:  timeline,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Track looks up a shipment by tracking code and returns it with its latest
// timeline entries (newest first) and the rendered progress.
func (s *ShipmentService) Track(ctx context.Context, trackingCode string) (*ports.TrackingView, error) {
	code := strings.TrimSpace(trackingCode)
	if code == "" {
		return nil, domain.ErrShipmentNotFound
	}

	shipment, err := s.repo.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}

	events, err := s.timeline.ListByShipment(ctx, shipment.ID, trackingTimelineMax)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}

	return &ports.TrackingView{
		Shipment: shipment,
		Timeline: events,
		Progress: shipment.Progress(),
	}, nil
}

func (s *ShipmentService) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.repo.FindByID(ctx, id)
}

// ListShipments returns a page of shipments, newest first.
func (s *ShipmentService) ListShipments(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}

	filter := ports.ListShipmentsFilter{
		Search: strings.TrimSpace(input.Search),
		Page:   page,
		Limit:  limit,
	}
	if input.Status != "" {
		filter.Status = string(domain.NormalizeStatus(input.Status))
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// CreateShipment stores a new shipment and records its first timeline entry.
// A tracking code is generated when none is supplied.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	now := s.now()

	status := domain.StatusOrderReceived
	if strings.TrimSpace(string(input.Status)) != "" {
		status = domain.NormalizeStatus(string(input.Status))
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	shipment := &domain.Shipment{
		TrackingCode:       strings.TrimSpace(input.TrackingCode),
		Sender:             input.Sender,
		Receiver:           input.Receiver,
		Origin:             input.Origin,
		Destination:        input.Destination,
		PackageDescription: input.PackageDescription,
		PackageWeightKg:    input.PackageWeightKg,
		Status:             status,
		CurrentLocation:    input.CurrentLocation,
		EstimatedDelivery:  input.EstimatedDelivery,
		HeldByCustoms:      input.HeldByCustoms,
		Notes:              input.Notes,
		Currency:           currency,
		PackageValue:       input.PackageValue,
		ShippingFee:        input.ShippingFee,
		DeliveryDays:       input.DeliveryDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.insert(ctx, shipment, shipment.TrackingCode == ""); err != nil {
		return nil, err
	}

	s.appendEvent(ctx, shipment, domain.TimelineEvent{
		ShipmentID:  shipment.ID,
		Status:      shipment.Status,
		Location:    shipment.Origin.City,
		Description: "Shipment created",
		Timestamp:   now,
	})

	s.logger.Info().Str("tracking_code", shipment.TrackingCode).Str("status", string(shipment.Status)).Msg("shipment created")
	s.publish(ctx, shipment, domain.ChangeShipmentCreated)

	return shipment, nil
}

// insert creates the shipment, regenerating the tracking code on collision
// when the code was not supplied by the caller.
func (s *ShipmentService) insert(ctx context.Context, shipment *domain.Shipment, generate bool) error {
	attempts := 1
	if generate {
		attempts = createAttempts
	}

	var err error
	for i := 0; i < attempts; i++ {
		if generate {
			shipment.TrackingCode = generateTrackingCode()
		}
		err = s.repo.Create(ctx, shipment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateTrackingCode) {
			s.logger.Error().Err(err).Msg("failed to create shipment")
			return fmt.Errorf("create shipment: %w", err)
		}
	}
	return err
}

// UpdateShipment applies a partial update. A status change appends a
// timeline entry; the legality of the transition is not checked.
func (s *ShipmentService) UpdateShipment(ctx context.Context, id string, input ports.UpdateShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := shipment.Status
	applyUpdate(shipment, input)
	statusChanged := shipment.Status != previous
	shipment.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, shipment); err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("shipment_id", id).Msg("failed to update shipment")
		return nil, fmt.Errorf("update shipment: %w", err)
	}

	if statusChanged {
		location := input.EventLocation
		if location == "" {
			location = shipment.CurrentLocation
		}
		description := input.EventDescription
		if description == "" {
			description = "Status updated to " + shipment.Status.Label()
		}
		appended := s.appendEvent(ctx, shipment, domain.TimelineEvent{
			ShipmentID:  shipment.ID,
			Status:      shipment.Status,
			Location:    location,
			Description: description,
			Timestamp:   shipment.UpdatedAt,
		})
		if appended {
			s.publish(ctx, shipment, domain.ChangeTimelineAppended)
		}
		s.logger.Info().
			Str("tracking_code", shipment.TrackingCode).
			Str("from", string(previous)).
			Str("to", string(shipment.Status)).
			Msg("shipment status changed")
	}

	s.publish(ctx, shipment, domain.ChangeShipmentUpdated)
	return shipment, nil
}

func applyUpdate(s *domain.Shipment, in ports.UpdateShipmentInput) {
	if in.Sender != nil {
		s.Sender = *in.Sender
	}
	if in.Receiver != nil {
		s.Receiver = *in.Receiver
	}
	if in.Origin != nil {
		s.Origin = *in.Origin
	}
	if in.Destination != nil {
		s.Destination = *in.Destination
	}
	if in.PackageDescription != nil {
		s.PackageDescription = *in.PackageDescription
	}
	if in.PackageWeightKg != nil {
		s.PackageWeightKg = in.PackageWeightKg
	}
	if in.Status != nil {
		s.Status = domain.NormalizeStatus(string(*in.Status))
	}
	if in.CurrentLocation != nil {
		s.CurrentLocation = *in.CurrentLocation
	}
	if in.EstimatedDelivery != nil {
		s.EstimatedDelivery = in.EstimatedDelivery
	}
	if in.HeldByCustoms != nil {
		s.HeldByCustoms = *in.HeldByCustoms
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	// A blank currency keeps the current one.
	if in.Currency != nil {
		if code := strings.ToUpper(strings.TrimSpace(*in.Currency)); code != "" {
			s.Currency = code
		}
	}
	if in.PackageValue != nil {
		s.PackageValue = in.PackageValue
	}
	if in.ShippingFee != nil {
		s.ShippingFee = in.ShippingFee
	}
	if in.DeliveryDays != nil {
		s.DeliveryDays = in.DeliveryDays
	}
}

// DeleteShipment removes the shipment and its timeline.
func (s *ShipmentService) DeleteShipment(ctx context.Context, id string) error {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("shipment_id", id).Msg("failed to delete shipment")
		return fmt.Errorf("delete shipment: %w", err)
	}

	if err := s.timeline.DeleteByShipment(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("shipment_id", id).Msg("failed to delete shipment timeline")
	}

	s.logger.Info().Str("tracking_code", shipment.TrackingCode).Msg("shipment deleted")
	s.publish(ctx, shipment, domain.ChangeShipmentDeleted)
	return nil
}

// AppendTimelineEvent records an administrative timeline entry without
// touching the shipment's current status.
func (s *ShipmentService) AppendTimelineEvent(ctx context.Context, id string, input ports.AppendTimelineInput) (*domain.TimelineEvent, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := &domain.TimelineEvent{
		ShipmentID:  shipment.ID,
		Status:      domain.NormalizeStatus(string(input.Status)),
		Location:    input.Location,
		Description: input.Description,
		Timestamp:   s.now(),
	}
	if err := s.timeline.Append(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("shipment_id", id).Msg("failed to append timeline event")
		return nil, fmt.Errorf("append timeline event: %w", err)
	}

	s.publish(ctx, shipment, domain.ChangeTimelineAppended)
	return event, nil
}

func (s *ShipmentService) ListTimeline(ctx context.Context, id string) ([]domain.TimelineEvent, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.timeline.ListByShipment(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return events, nil
}

// appendEvent writes a timeline entry that accompanies a shipment write.
// Failure is logged, not returned: the shipment write already succeeded.
func (s *ShipmentService) appendEvent(ctx context.Context, shipment *domain.Shipment, event domain.TimelineEvent) bool {
	if err := s.timeline.Append(ctx, &event); err != nil {
		s.logger.Warn().Err(err).Str("tracking_code", shipment.TrackingCode).Msg("failed to append timeline event")
		return false
	}
	return true
}

// publish is best effort; push delivery is never part of the write's outcome.
func (s *ShipmentService) publish(ctx context.Context, shipment *domain.Shipment, kind domain.ChangeKind) {
	if s.publisher == nil {
		return
	}
	n := domain.ChangeNotification{
		TrackingCode: shipment.TrackingCode,
		ShipmentID:   shipment.ID,
		Kind:         kind,
		Status:       shipment.Status,
		At:           s.now(),
		Source:       domain.SourcePush,
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("tracking_code", shipment.TrackingCode).Str("kind", string(kind)).Msg("failed to publish change")
	}
}

// generateTrackingCode returns a code in the format SXXXXXXXXX: the SX prefix
// followed by eight upper-case base-36 characters.
func generateTrackingCode() string {
	b := make([]byte, trackingCodeLength)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s%08X", trackingCodePrefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	for i := range b {
		b[i] = trackingAlphabet[int(b[i])%len(trackingAlphabet)]
	}
	return trackingCodePrefix + string(b)
}
