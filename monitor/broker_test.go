package monitor_test

import (
	"testing"
	"time"

	"github.com/mickamy/craftd-proxy/monitor"
	"github.com/mickamy/craftd-proxy/survival"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	t.Parallel()
	b := monitor.New()
	ch, unsub := b.Subscribe()
	defer unsub()

	ev := monitor.Observed{
		SessionID: "s1",
		Direction: survival.Request,
		Packet:    survival.Packet{Opcode: survival.OpKeepAlive},
	}
	b.Publish(ev)

	select {
	case got := <-ch:
		if got.SessionID != "s1" {
			t.Fatalf("got %+v, want SessionID s1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	b := monitor.New()
	ch, unsub := b.Subscribe()
	unsub()
	unsub() // must be safe to call twice

	b.Publish(monitor.Observed{SessionID: "s1"})

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after unsubscribe")
	}
}

func TestPublishDropsOnFullSubscriberBuffer(t *testing.T) {
	t.Parallel()
	b := monitor.New()
	_, unsub := b.Subscribe()
	defer unsub()

	// Publish far more events than the subscriber buffer holds; none
	// of this should block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(monitor.Observed{SessionID: "flood"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}
