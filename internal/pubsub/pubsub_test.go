package pubsub

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeAndUnsubscribe(t *testing.T) {
	ps := New()

	ch1 := ps.Subscribe()
	ch2 := ps.Subscribe()
	ch3 := ps.Subscribe()

	if ch1 == nil || ch2 == nil || ch3 == nil {
		t.Fatal("Subscribe() returned nil channel")
	}

	ps.mu.RLock()
	if len(ps.subscribers) != 3 {
		t.Errorf("expected 3 subscribers, got %d", len(ps.subscribers))
	}
	ps.mu.RUnlock()

	// Unsubscribe the middle one
	ps.Unsubscribe(ch2)

	ps.mu.RLock()
	if len(ps.subscribers) != 2 {
		t.Errorf("expected 2 subscribers, got %d", len(ps.subscribers))
	}
	ps.mu.RUnlock()

	select {
	case _, ok := <-ch2:
		if ok {
			t.Error("channel should be closed after unsubscribe")
		}
	default:
		t.Error("channel should be closed and readable")
	}

	// Remaining subscribers still receive events
	ps.Publish(Event{Type: EventPickMade})

	for i, ch := range []chan Event{ch1, ch3} {
		select {
		case received := <-ch:
			if received.Type != EventPickMade {
				t.Errorf("subscriber %d: expected %s, got %s", i, EventPickMade, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	ps := New()

	// Should not panic
	ps.Publish(Event{Type: EventDraftStarted})
}

func TestPublishPayload(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()

	event := Event{
		Type: EventPickMade,
		Payload: map[string]interface{}{
			"candidateId": "nikola-jokic",
			"team":        1.0,
			"overall":     1.0,
		},
	}

	ps.Publish(event)

	select {
	case received := <-ch:
		if received.Type != EventPickMade {
			t.Errorf("expected type %s, got %s", EventPickMade, received.Type)
		}
		if received.Payload["candidateId"] != "nikola-jokic" {
			t.Error("payload mismatch")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestPublishDropsWhenChannelFull(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()

	// Buffer size is 10, overfill it
	for i := 0; i < 15; i++ {
		ps.Publish(Event{Type: EventPickMade})
	}

	count := 0
	for {
		select {
		case <-ch:
			count++
		default:
			if count != 10 {
				t.Errorf("expected 10 buffered events, got %d", count)
			}
			return
		}
	}
}

func TestConcurrentSubscribeUnsubscribe(t *testing.T) {
	ps := New()

	var wg sync.WaitGroup
	numGoroutines := 50

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := ps.Subscribe()
			time.Sleep(time.Millisecond)
			ps.Unsubscribe(ch)
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ps.Publish(Event{Type: EventDraftReset})
		}()
	}

	wg.Wait()

	ps.mu.RLock()
	subCount := len(ps.subscribers)
	ps.mu.RUnlock()

	if subCount != 0 {
		t.Errorf("expected 0 subscribers after all unsubscribe, got %d", subCount)
	}
}

// recordingUpstream implements Upstream for testing
type recordingUpstream struct {
	mu          sync.Mutex
	published   []Event
	subscribers []chan Event
}

func newRecordingUpstream() *recordingUpstream {
	return &recordingUpstream{}
}

func (m *recordingUpstream) Publish(event Event) {
	m.mu.Lock()
	m.published = append(m.published, event)
	subs := make([]chan Event, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	broadcast(subs, event)
}

func (m *recordingUpstream) Subscribe() chan Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Event, 100)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

func (m *recordingUpstream) Unsubscribe(ch chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscribers {
		if sub == ch {
			close(ch)
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			break
		}
	}
}

func (m *recordingUpstream) publishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Event, len(m.published))
	copy(result, m.published)
	return result
}

func TestPublishWithUpstream(t *testing.T) {
	upstream := newRecordingUpstream()
	ps := NewWithUpstream(upstream)

	// Give the bridge goroutine time to start
	time.Sleep(10 * time.Millisecond)

	ch := ps.Subscribe()

	ps.Publish(Event{Type: EventDraftStarted, Payload: map[string]interface{}{"numTeams": 12.0}})

	time.Sleep(10 * time.Millisecond)
	published := upstream.publishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event published to upstream, got %d", len(published))
	}
	if published[0].Type != EventDraftStarted {
		t.Errorf("expected event type %s, got %s", EventDraftStarted, published[0].Type)
	}

	// Local subscriber receives the event via the upstream broadcast
	select {
	case received := <-ch:
		if received.Type != EventDraftStarted {
			t.Errorf("expected type %s, got %s", EventDraftStarted, received.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event from upstream")
	}
}

func TestUpstreamBroadcastToLocalSubscribers(t *testing.T) {
	upstream := newRecordingUpstream()
	ps := NewWithUpstream(upstream)

	time.Sleep(10 * time.Millisecond)

	ch1 := ps.Subscribe()
	ch2 := ps.Subscribe()

	// Publish directly to upstream, simulating another instance
	upstream.Publish(Event{Type: EventRankingsSync})

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Type != EventRankingsSync {
				t.Errorf("subscriber %d: expected type %s, got %s", i, EventRankingsSync, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestMockNATSReplay(t *testing.T) {
	ps, err := NewMockNATSPubSub("nats://unused:4222", "draft.events")
	if err != nil {
		t.Fatalf("NewMockNATSPubSub: %v", err)
	}
	defer ps.Close()

	for i := 0; i < 5; i++ {
		ps.Publish(Event{Type: EventPickMade})
	}

	if got := ps.GetMessageCount(); got != 5 {
		t.Errorf("message count = %d, want 5", got)
	}

	ch := make(chan Event, 10)
	ps.ReplayMessages(ch, 3)
	if len(ch) != 3 {
		t.Errorf("replayed %d messages, want 3", len(ch))
	}
}

func TestMockNATSDurableSubscription(t *testing.T) {
	ps, err := NewMockNATSPubSub("nats://unused:4222", "draft.events")
	if err != nil {
		t.Fatalf("NewMockNATSPubSub: %v", err)
	}
	defer ps.Close()

	received := make(chan Event, 1)
	if err := ps.SubscribeJetStream("draft-worker", func(e Event) {
		received <- e
	}); err != nil {
		t.Fatalf("SubscribeJetStream: %v", err)
	}

	ps.Publish(Event{Type: EventDraftReset})

	select {
	case e := <-received:
		if e.Type != EventDraftReset {
			t.Errorf("expected %s, got %s", EventDraftReset, e.Type)
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for durable handler")
	}
}
