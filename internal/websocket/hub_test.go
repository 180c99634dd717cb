package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		conn: nil,
		send: make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)

	hub.register(c1)
	hub.register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub)
	hub.register(c)
	hub.unregister(c)
	// Should not panic
	hub.unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.register(c1)
	hub.register(c2)

	ev := NewEvent("task", "approved", "t1", map[string]any{"child_id": "c1"})
	hub.Broadcast(ev)

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "task_approved" {
				t.Errorf("expected type task_approved, got %s", got.Type)
			}
			if got.ID != "t1" {
				t.Errorf("expected id t1, got %s", got.ID)
			}
			if got.Extra["child_id"] != "c1" {
				t.Errorf("extra = %v", got.Extra)
			}
		default:
			t.Error("client did not receive broadcast")
		}
	}
}

func TestBroadcastSkipsFullClient(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub)
	hub.register(c)

	// Fill the buffer; further broadcasts must not block.
	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(NewEvent("task", "created", "t1", nil))
	}
	done := make(chan struct{})
	go func() {
		hub.Broadcast(NewEvent("task", "created", "t2", nil))
		close(done)
	}()
	select {
	case <-done:
	default:
		// Give the goroutine a chance; Broadcast on a full buffer is
		// non-blocking so this should settle immediately.
		<-done
	}

	if len(c.send) != sendBufferSize {
		t.Errorf("send buffer = %d, want %d", len(c.send), sendBufferSize)
	}
}
