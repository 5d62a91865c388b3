package api

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/api/handler"
	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

type oneShipment struct {
	ports.ShipmentService
}

func (oneShipment) Track(ctx context.Context, code string) (*ports.TrackingView, error) {
	s := &domain.Shipment{ID: "s1", TrackingCode: code, Status: domain.StatusInTransit}
	return &ports.TrackingView{Shipment: s, Timeline: []domain.TimelineEvent{}, Progress: s.Progress()}, nil
}

// silentFeed never delivers and closes its channel when the subscriber leaves.
type silentFeed struct{}

func (silentFeed) Subscribe(ctx context.Context, code string) (<-chan domain.ChangeNotification, error) {
	ch := make(chan domain.ChangeNotification)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func TestNewServer_ShutdownEndsOpenStreams(t *testing.T) {
	e := echo.New()
	e.GET("/v1/tracking/:code/stream", handler.NewTrackingHandler(oneShipment{}, silentFeed{}, zerolog.Nop()).Stream)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := NewServer(ln.Addr().String(), e)
	go func() { _ = srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/v1/tracking/SX1/stream")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "event: progress") {
		t.Fatalf("expected initial progress event, got %q (%v)", line, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	start := time.Now()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown with an open stream: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("shutdown waited %s for the stream", elapsed)
	}
}
