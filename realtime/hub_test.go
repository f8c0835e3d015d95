package realtime

import (
	"encoding/json"
	"testing"
)

func newTestClient(userID uint, id string, buffer int) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
}

func TestPublishTargetsOnlyGivenUsers(t *testing.T) {
	hub := NewHub()

	a1 := newTestClient(1, "a1", 4)
	a2 := newTestClient(1, "a2", 4)
	b1 := newTestClient(2, "b1", 4)
	hub.AddClient(a1)
	hub.AddClient(a2)
	hub.AddClient(b1)

	hub.Publish(map[string]string{"type": "new_message"}, 1)

	for _, c := range []*Client{a1, a2} {
		select {
		case payload := <-c.Send:
			var event map[string]string
			if err := json.Unmarshal(payload, &event); err != nil {
				t.Fatalf("client %s received invalid JSON: %v", c.ID, err)
			}
			if event["type"] != "new_message" {
				t.Fatalf("client %s received unexpected event: %v", c.ID, event)
			}
		default:
			t.Fatalf("client %s received nothing", c.ID)
		}
	}

	select {
	case <-b1.Send:
		t.Fatal("user 2 must not receive an event targeted at user 1")
	default:
	}
}

func TestPublishToMultipleUsers(t *testing.T) {
	hub := NewHub()

	a := newTestClient(1, "a", 4)
	b := newTestClient(2, "b", 4)
	hub.AddClient(a)
	hub.AddClient(b)

	hub.Publish(map[string]string{"type": "new_message"}, 1, 2)

	for _, c := range []*Client{a, b} {
		select {
		case <-c.Send:
		default:
			t.Fatalf("client %s received nothing", c.ID)
		}
	}
}

func TestPublishSkipsFullClients(t *testing.T) {
	hub := NewHub()

	full := newTestClient(1, "full", 1)
	full.Send <- []byte("backlog")
	hub.AddClient(full)

	// Must not block even though the client's buffer is exhausted.
	hub.Publish(map[string]string{"type": "new_message"}, 1)

	if got := <-full.Send; string(got) != "backlog" {
		t.Fatalf("expected the original backlog entry, got %q", got)
	}
	select {
	case extra := <-full.Send:
		t.Fatalf("expected the new event to be dropped, got %q", extra)
	default:
	}
}

func TestRemoveClient(t *testing.T) {
	hub := NewHub()

	c1 := newTestClient(1, "c1", 1)
	c2 := newTestClient(1, "c2", 1)
	hub.AddClient(c1)
	hub.AddClient(c2)

	if got := hub.ConnectionCount(1); got != 2 {
		t.Fatalf("expected 2 connections, got %d", got)
	}

	hub.RemoveClient(1, "c1")
	if got := hub.ConnectionCount(1); got != 1 {
		t.Fatalf("expected 1 connection after removal, got %d", got)
	}
	if _, ok := <-c1.Send; ok {
		t.Fatal("expected removed client's send channel to be closed")
	}

	hub.RemoveClient(1, "c2")
	if got := hub.ConnectionCount(1); got != 0 {
		t.Fatalf("expected 0 connections, got %d", got)
	}

	// Removing an unknown client is a no-op.
	hub.RemoveClient(1, "missing")
	hub.RemoveClient(42, "missing")
}
