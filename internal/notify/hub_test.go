package notify

import (
	"testing"

	"github.com/renthaus/enlistd/internal/platform/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewHub(log)
}

func TestHub_BroadcastReachesSubscribedChannelOnly(t *testing.T) {
	hub := newTestHub(t)

	john := hub.NewClient("john@wick.com")
	hub.AddChannel(john, "john@wick.com")
	other := hub.NewClient("helen@wick.com")
	hub.AddChannel(other, "helen@wick.com")

	hub.Broadcast(Message{Channel: "john@wick.com", Event: EventPaymentReceived})

	select {
	case msg := <-john.Outbound:
		if msg.Event != EventPaymentReceived {
			t.Fatalf("event = %q, want %q", msg.Event, EventPaymentReceived)
		}
	default:
		t.Fatal("subscribed client received nothing")
	}
	select {
	case msg := <-other.Outbound:
		t.Fatalf("unsubscribed client received %+v", msg)
	default:
	}
}

func TestHub_BroadcastDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(t)
	drops := 0
	hub.SetInstrumentation(func() { drops++ }, nil)

	c := hub.NewClient("john@wick.com")
	hub.AddChannel(c, "john@wick.com")

	for i := 0; i < cap(c.Outbound)+3; i++ {
		hub.Broadcast(Message{Channel: "john@wick.com", Event: EventPaymentReceived})
	}
	if drops != 3 {
		t.Fatalf("drops = %d, want 3", drops)
	}
}

func TestHub_ClientCountTracksSubscriptions(t *testing.T) {
	hub := newTestHub(t)
	var count int
	hub.SetInstrumentation(nil, func(n int) { count = n })

	a := hub.NewClient("john@wick.com")
	hub.AddChannel(a, "john@wick.com")
	b := hub.NewClient("helen@wick.com")
	hub.AddChannel(b, "helen@wick.com")
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	hub.RemoveClient(a)
	if count != 1 {
		t.Fatalf("count = %d after remove, want 1", count)
	}

	hub.Broadcast(Message{Channel: "john@wick.com", Event: EventPaymentReceived})
	select {
	case msg := <-a.Outbound:
		t.Fatalf("removed client received %+v", msg)
	default:
	}
}

func TestHub_BroadcastIgnoresEmptyChannel(t *testing.T) {
	hub := newTestHub(t)
	c := hub.NewClient("john@wick.com")
	hub.AddChannel(c, "")
	if len(c.Channels) != 0 {
		t.Fatalf("empty channel subscribed: %v", c.Channels)
	}
	hub.Broadcast(Message{Channel: "", Event: EventPaymentReceived})
}
