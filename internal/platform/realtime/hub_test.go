package realtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
)

func quietHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (h *Hub) addForTest(conversationID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[conversationID] == nil {
		h.channels[conversationID] = make(map[*subscriber]struct{})
	}
	h.channels[conversationID][sub] = struct{}{}
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	hub := quietHub()
	sub := &subscriber{send: make(chan []byte, 1)}
	hub.addForTest("conv_1", sub)

	hub.Publish(context.Background(), Event{
		Type:           "message.created",
		ConversationID: "conv_1",
		Payload:        []byte(`{"body":"hi"}`),
	})

	select {
	case raw := <-sub.send:
		if len(raw) == 0 {
			t.Fatal("empty event frame")
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	// Other conversations stay quiet.
	other := &subscriber{send: make(chan []byte, 1)}
	hub.addForTest("conv_2", other)
	hub.Publish(context.Background(), Event{Type: "message.created", ConversationID: "conv_1"})
	select {
	case <-other.send:
		t.Fatal("event leaked across conversations")
	default:
	}
}

func TestPublishDropsSlowSubscriber(t *testing.T) {
	hub := quietHub()
	sub := &subscriber{send: make(chan []byte, 1)}
	hub.addForTest("conv_1", sub)

	// Second publish finds the buffer full and must not block.
	hub.Publish(context.Background(), Event{Type: "message.created", ConversationID: "conv_1"})
	hub.Publish(context.Background(), Event{Type: "message.created", ConversationID: "conv_1"})

	if got := len(sub.send); got != 1 {
		t.Fatalf("buffered events = %d, want 1", got)
	}
}

// Publishing while subscribers disconnect must never send on a closed
// channel; run with -race.
func TestPublishRacesWithDisconnect(t *testing.T) {
	hub := quietHub()

	for i := 0; i < 200; i++ {
		sub := &subscriber{send: make(chan []byte, 1)}
		hub.addForTest("conv_1", sub)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				hub.Publish(context.Background(), Event{Type: "message.created", ConversationID: "conv_1"})
			}
		}()
		go func() {
			defer wg.Done()
			hub.remove("conv_1", sub)
		}()
		wg.Wait()
	}
}
