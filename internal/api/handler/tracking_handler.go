package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/api/metrics"
	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

const defaultHeartbeat = 25 * time.Second

// TrackingHandler serves the public tracking view and its live progress stream.
type TrackingHandler struct {
	service   ports.ShipmentService
	feed      ports.ChangeFeed
	log       zerolog.Logger
	heartbeat time.Duration
}

func NewTrackingHandler(service ports.ShipmentService, feed ports.ChangeFeed, log zerolog.Logger) *TrackingHandler {
	return &TrackingHandler{
		service:   service,
		feed:      feed,
		log:       log,
		heartbeat: defaultHeartbeat,
	}
}

type deletedEvent struct {
	TrackingCode string `json:"tracking_code"`
}

// Track handles GET /v1/tracking?code=.
//
// @Summary      Track a shipment
// @Description  Shipment details, stage progress and the most recent timeline entries.
// @Tags         tracking
// @Produce      json
// @Param        code  query     string  true  "Tracking code"
// @Success      200   {object}  trackingResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tracking [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	view, err := h.lookup(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackingResponse(view))
}

// Stream handles GET /v1/tracking/:code/stream. The current view is sent
// first as a "progress" event and again after every change notification.
// A "deleted" event ends the stream.
//
// @Summary      Live tracking progress
// @Tags         tracking
// @Produce      text/event-stream
// @Param        code  path  string  true  "Tracking code"
// @Success      200
// @Failure      404   {object}  errorResponse
// @Router       /v1/tracking/{code}/stream [get]
func (h *TrackingHandler) Stream(c echo.Context) error {
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	view, err := h.lookup(ctx, c.Param("code"))
	if err != nil {
		return err
	}
	code := view.Shipment.TrackingCode

	changes, err := h.feed.Subscribe(ctx, code)
	if err != nil {
		return err
	}

	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	log := h.log.With().Str("tracking_code", code).Logger()
	log.Debug().Msg("progress stream opened")
	defer func() { log.Debug().Msg("progress stream closed") }()

	w := newSSEWriter(c.Response())
	if err := w.event(sseEventProgress, toTrackingResponse(view)); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if err := w.ping(); err != nil {
				return nil
			}

		case n, ok := <-changes:
			if !ok {
				return nil
			}
			if n.Kind == domain.ChangeShipmentDeleted {
				_ = w.event(sseEventDeleted, deletedEvent{TrackingCode: code})
				return nil
			}

			view, err := h.service.Track(ctx, code)
			if errors.Is(err, domain.ErrShipmentNotFound) {
				_ = w.event(sseEventDeleted, deletedEvent{TrackingCode: code})
				return nil
			}
			if err != nil {
				log.Error().Err(err).Str("source", n.Source).Msg("refresh tracking view")
				continue
			}
			if err := w.event(sseEventProgress, toTrackingResponse(view)); err != nil {
				return nil
			}
		}
	}
}

func (h *TrackingHandler) lookup(ctx context.Context, code string) (*ports.TrackingView, error) {
	view, err := h.service.Track(ctx, code)
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	case err != nil:
		return nil, err
	}
	metrics.TrackingLookupsTotal.WithLabelValues("found").Inc()
	return view, nil
}
