package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 4)}
	hub.register <- client

	hub.Broadcast(Event{Type: "order_created", OrderID: "ord1", TotalAmount: 74.97})

	select {
	case data := <-client.Send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		if event.Type != "order_created" || event.OrderID != "ord1" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Timestamp == 0 {
			t.Error("timestamp should be stamped on broadcast")
		}
	case <-time.After(time.Second):
		t.Fatal("client never received the broadcast")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 1)}
	hub.register <- client
	hub.unregister <- client

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected closed channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	// a broadcast after unregister must not panic or block
	hub.Broadcast(Event{Type: "order_status", OrderID: "ord1", Status: "shipped"})
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	hub.Broadcast(Event{Type: "order_created", OrderID: "ord1"})

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Error("slow client should have been dropped with a closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("slow client channel never closed")
	}
}

func TestNilHubBroadcast(t *testing.T) {
	var hub *Hub
	hub.Broadcast(Event{Type: "order_created", OrderID: "ord1"})
}
