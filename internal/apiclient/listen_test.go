package apiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"fleet_desk/internal/events"
)

func TestListenDeliversEventsUntilCancelled(t *testing.T) {
	upgrader := websocket.Upgrader{}
	c := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(events.Event{Topic: events.TopicTechnicians, Action: "created", ID: "t9"})
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan events.Event, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- c.Listen(ctx, func(ev events.Event) { got <- ev })
	}()

	select {
	case ev := <-got:
		if ev.Topic != events.TopicTechnicians || ev.ID != "t9" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Listen returned %v after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}
