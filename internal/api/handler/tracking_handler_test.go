package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

func trackingStub(calls *int, statuses ...domain.ShipmentStatus) *stubShipmentService {
	return &stubShipmentService{
		trackFn: func(ctx context.Context, code string) (*ports.TrackingView, error) {
			if code != "SWX-7K2P9Q" {
				return nil, domain.ErrShipmentNotFound
			}
			s := sampleShipment()
			if *calls < len(statuses) {
				s.Status = statuses[*calls]
			}
			*calls++
			return &ports.TrackingView{Shipment: s, Timeline: []domain.TimelineEvent{}, Progress: s.Progress()}, nil
		},
	}
}

func TestTrackingHandler_Track(t *testing.T) {
	e := newTestEcho()
	calls := 0
	h := NewTrackingHandler(trackingStub(&calls), &fakeFeed{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/tracking?code=SWX-7K2P9Q", nil), rec)

	if err := h.Track(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp trackingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Shipment.TrackingCode != "SWX-7K2P9Q" {
		t.Fatalf("unexpected shipment %+v", resp.Shipment)
	}
	if resp.Progress.CurrentIndex != 3 || len(resp.Progress.Stages) != len(domain.Stages) {
		t.Fatalf("unexpected progress %+v", resp.Progress)
	}
	if resp.Timeline == nil {
		t.Fatal("timeline must serialize as an array")
	}
}

func TestTrackingHandler_Track_NotFound(t *testing.T) {
	e := newTestEcho()
	calls := 0
	h := NewTrackingHandler(trackingStub(&calls), &fakeFeed{}, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/tracking?code=NOPE", nil), httptest.NewRecorder())

	if err := h.Track(c); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestTrackingHandler_Stream_ProgressThenDeleted(t *testing.T) {
	e := newTestEcho()
	calls := 0
	feed := &fakeFeed{queued: []domain.ChangeNotification{
		{TrackingCode: "SWX-7K2P9Q", Kind: domain.ChangeShipmentUpdated, Source: domain.SourcePush},
		{TrackingCode: "SWX-7K2P9Q", Kind: domain.ChangeShipmentDeleted, Source: domain.SourcePoll},
		{TrackingCode: "SWX-7K2P9Q", Kind: domain.ChangeShipmentUpdated, Source: domain.SourcePoll},
	}}
	h := NewTrackingHandler(trackingStub(&calls, domain.StatusInTransit, domain.StatusOutForDelivery), feed, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("code")
	c.SetParamValues("SWX-7K2P9Q")

	if err := h.Stream(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if feed.subscribed != "SWX-7K2P9Q" {
		t.Fatalf("expected subscription for SWX-7K2P9Q, got %q", feed.subscribed)
	}

	body := rec.Body.String()
	if n := strings.Count(body, "event: progress\n"); n != 2 {
		t.Fatalf("expected 2 progress events, got %d:\n%s", n, body)
	}
	if !strings.Contains(body, `"status":"out_for_delivery"`) {
		t.Fatalf("expected refreshed view in stream:\n%s", body)
	}
	if !strings.HasSuffix(body, "event: deleted\ndata: {\"tracking_code\":\"SWX-7K2P9Q\"}\n\n") {
		t.Fatalf("expected stream to end with deleted event:\n%s", body)
	}
	if calls != 2 {
		t.Fatalf("expected 2 lookups, got %d", calls)
	}
}

func TestTrackingHandler_Stream_FeedClosed(t *testing.T) {
	e := newTestEcho()
	calls := 0
	h := NewTrackingHandler(trackingStub(&calls), &fakeFeed{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("code")
	c.SetParamValues("SWX-7K2P9Q")

	if err := h.Stream(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if n := strings.Count(rec.Body.String(), "event: progress\n"); n != 1 {
		t.Fatalf("expected the initial progress event only, got %d", n)
	}
}

func TestTrackingHandler_Stream_UnknownCode(t *testing.T) {
	e := newTestEcho()
	calls := 0
	feed := &fakeFeed{}
	h := NewTrackingHandler(trackingStub(&calls), feed, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("code")
	c.SetParamValues("NOPE")

	if err := h.Stream(c); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
	if feed.subscribed != "" {
		t.Fatal("unknown codes must not be subscribed")
	}
	if rec.Body.Len() != 0 {
		t.Fatal("no stream must be opened for an unknown code")
	}
}

func TestTrackingHandler_Stream_SubscribeError(t *testing.T) {
	e := newTestEcho()
	calls := 0
	boom := errors.New("redis down")
	h := NewTrackingHandler(trackingStub(&calls), &fakeFeed{err: boom}, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("code")
	c.SetParamValues("SWX-7K2P9Q")

	if err := h.Stream(c); !errors.Is(err, boom) {
		t.Fatalf("expected subscribe error, got %v", err)
	}
}
