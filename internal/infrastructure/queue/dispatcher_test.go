package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

type recordingPublisher struct {
	mu   sync.Mutex
	got  []domain.ChangeNotification
	err  error
	done chan struct{}
	want int
}

func newRecordingPublisher(want int) *recordingPublisher {
	return &recordingPublisher{done: make(chan struct{}), want: want}
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.ChangeNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, n)
	if len(p.got) == p.want {
		close(p.done)
	}
	return p.err
}

func (p *recordingPublisher) waitAll(t *testing.T) []domain.ChangeNotification {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d notifications", p.want)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeNotification(nil), p.got...)
}

func TestDispatcher_PreservesPerShipmentOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kinds := []domain.ChangeKind{
		domain.ChangeShipmentCreated,
		domain.ChangeTimelineAppended,
		domain.ChangeShipmentUpdated,
		domain.ChangeShipmentDeleted,
	}
	pub := newRecordingPublisher(len(kinds) * 2)
	d := NewDispatcher(4, pub, zerolog.Nop())
	d.Start(ctx)

	for _, k := range kinds {
		for _, code := range []string{"SXAAAAAAAA", "SXBBBBBBBB"} {
			if err := d.Publish(ctx, domain.ChangeNotification{TrackingCode: code, Kind: k}); err != nil {
				t.Fatalf("publish: %v", err)
			}
		}
	}

	got := pub.waitAll(t)
	perCode := map[string][]domain.ChangeKind{}
	for _, n := range got {
		perCode[n.TrackingCode] = append(perCode[n.TrackingCode], n.Kind)
	}
	for code, seq := range perCode {
		for i, k := range kinds {
			if seq[i] != k {
				t.Fatalf("%s: out of order: %v", code, seq)
			}
		}
	}
}

func TestDispatcher_WorkerErrorsDoNotStopProcessing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := newRecordingPublisher(2)
	pub.err = errors.New("redis down")
	d := NewDispatcher(1, pub, zerolog.Nop())
	d.Start(ctx)

	_ = d.Publish(ctx, domain.ChangeNotification{TrackingCode: "SX1"})
	_ = d.Publish(ctx, domain.ChangeNotification{TrackingCode: "SX1"})
	pub.waitAll(t)
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := NewDispatcher(1, newRecordingPublisher(0), zerolog.Nop())

	// Not started: nothing drains the buffer.
	for i := 0; i < channelBuffer; i++ {
		if err := d.Publish(context.Background(), domain.ChangeNotification{TrackingCode: "SX1"}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	if err := d.Publish(context.Background(), domain.ChangeNotification{TrackingCode: "SX1"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(3, newRecordingPublisher(0), zerolog.Nop())
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() { d.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
	}

	if err := d.Publish(ctx, domain.ChangeNotification{TrackingCode: "SX1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(5, nil, zerolog.Nop())
	for _, code := range []string{"SX1", "SXZZZZZZZZ", ""} {
		i := d.shardIndex(code)
		if i < 0 || i >= 5 || d.shardIndex(code) != i {
			t.Fatalf("bad shard %d for %q", i, code)
		}
	}
}
