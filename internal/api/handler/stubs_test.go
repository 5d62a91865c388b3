package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

var fixedTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func sampleShipment() *domain.Shipment {
	return &domain.Shipment{
		ID:           "65f1c0ffee0000000000abcd",
		TrackingCode: "SWX-7K2P9Q",
		Sender:       domain.Party{Name: "Ada Obi", Address: "12 Marina Rd"},
		Receiver:     domain.Party{Name: "Lena Kraus", Address: "Hauptstr. 4"},
		Origin:       domain.Place{City: "Lagos", Country: "Nigeria"},
		Destination:  domain.Place{City: "Berlin", Country: "Germany"},
		Status:       domain.StatusInTransit,
		Currency:     "EUR",
		CreatedAt:    fixedTime,
		UpdatedAt:    fixedTime,
	}
}

// --- ShipmentService ---

type stubShipmentService struct {
	trackFn  func(ctx context.Context, code string) (*ports.TrackingView, error)
	getFn    func(ctx context.Context, id string) (*domain.Shipment, error)
	listFn   func(ctx context.Context, in ports.ListShipmentsInput) (*ports.ListShipmentsResult, error)
	createFn func(ctx context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateShipmentInput) (*domain.Shipment, error)
	deleteFn func(ctx context.Context, id string) error
	appendFn func(ctx context.Context, id string, in ports.AppendTimelineInput) (*domain.TimelineEvent, error)
	listTLFn func(ctx context.Context, id string) ([]domain.TimelineEvent, error)
}

func (s *stubShipmentService) Track(ctx context.Context, code string) (*ports.TrackingView, error) {
	return s.trackFn(ctx, code)
}

func (s *stubShipmentService) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.getFn(ctx, id)
}

func (s *stubShipmentService) ListShipments(ctx context.Context, in ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubShipmentService) CreateShipment(ctx context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	return s.createFn(ctx, in)
}

func (s *stubShipmentService) UpdateShipment(ctx context.Context, id string, in ports.UpdateShipmentInput) (*domain.Shipment, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubShipmentService) DeleteShipment(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubShipmentService) AppendTimelineEvent(ctx context.Context, id string, in ports.AppendTimelineInput) (*domain.TimelineEvent, error) {
	return s.appendFn(ctx, id, in)
}

func (s *stubShipmentService) ListTimeline(ctx context.Context, id string) ([]domain.TimelineEvent, error) {
	return s.listTLFn(ctx, id)
}

// --- AuthService ---

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, error)
	signInFn   func(ctx context.Context, email, password string) (string, *domain.User, error)
	signOutFn  func(ctx context.Context, identity domain.Identity) error
	sessionFn  func(ctx context.Context, identity domain.Identity) (*domain.User, error)
	requestFn  func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, token, password string) error
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) SignOut(ctx context.Context, identity domain.Identity) error {
	return s.signOutFn(ctx, identity)
}

func (s *stubAuthService) Session(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.sessionFn(ctx, identity)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidCredentials
}

// --- InvoiceService ---

type stubInvoiceService struct {
	summarizeFn func(inv domain.Invoice) ports.InvoiceSummary
	renderFn    func(ctx context.Context, inv domain.Invoice) (*ports.RenderedDocument, error)
}

func (s *stubInvoiceService) Summarize(inv domain.Invoice) ports.InvoiceSummary {
	return s.summarizeFn(inv)
}

func (s *stubInvoiceService) Render(ctx context.Context, inv domain.Invoice) (*ports.RenderedDocument, error) {
	return s.renderFn(ctx, inv)
}

// --- ChangeFeed ---

// fakeFeed hands out a pre-filled channel, closed after the queued notifications.
type fakeFeed struct {
	queued     []domain.ChangeNotification
	subscribed string
	err        error
}

func (f *fakeFeed) Subscribe(ctx context.Context, code string) (<-chan domain.ChangeNotification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subscribed = code
	ch := make(chan domain.ChangeNotification, len(f.queued))
	for _, n := range f.queued {
		ch <- n
	}
	close(ch)
	return ch, nil
}
