package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := bus.Subscribe(ctx)
	b := bus.Subscribe(ctx)
	ev := New(Created, "skills", 7)
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	for _, ch := range []<-chan Event{a, b} {
		select {
		case got := <-ch:
			if got.ID != ev.ID || got.Resource != "skills" || got.ResourceID != 7 {
				t.Fatalf("unexpected event %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatalf("event not delivered")
		}
	}
}

func TestBusDropsForSlowSubscriber(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := bus.Subscribe(ctx)

	for i := 0; i < subscriberBuffer+5; i++ {
		if err := bus.Publish(ctx, New(Updated, "projects", int64(i))); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected buffer to be full at %d, got %d", subscriberBuffer, len(ch))
	}
}

func TestBusUnsubscribesOnCancel(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	ch := bus.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
	if n := bus.Subscribers(); n != 0 {
		t.Fatalf("expected no subscribers, got %d", n)
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(context.Background())
	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	late := bus.Subscribe(context.Background())
	if _, ok := <-late; ok {
		t.Fatalf("expected closed channel after bus close")
	}
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	bus := NewBus()
	ch := bus.Subscribe(context.Background())
	m := Multi{failingPublisher{err: boom}, bus, Nop{}}

	if err := m.Publish(context.Background(), New(Deleted, "education", 1)); !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ch) != 1 {
		t.Fatalf("later publishers must still run")
	}
}

type recordingWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherMessage(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}
	ev := New(Reordered, "skills", 0)

	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "skills" {
		t.Fatalf("unexpected key %q", msg.Key)
	}
	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != ev.ID || decoded.Type != Reordered {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[1].Value) != "reordered" {
		t.Fatalf("unexpected headers %+v", msg.Headers)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("close: %v", err)
	}
	if err := p.Publish(context.Background(), ev); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected closed error, got %v", err)
	}
}

func TestNewKafkaPublisherValidates(t *testing.T) {
	if _, err := NewKafkaPublisher(nil, "t", nil); err == nil {
		t.Fatalf("expected broker error")
	}
	if _, err := NewKafkaPublisher([]string{"localhost:9092"}, "", nil); err == nil {
		t.Fatalf("expected topic error")
	}
}
