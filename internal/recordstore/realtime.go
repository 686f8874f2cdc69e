package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"teabloom-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EventAction is the kind of change pushed by the record store.
type EventAction string

const (
	ActionCreate EventAction = "create"
	ActionUpdate EventAction = "update"
	ActionDelete EventAction = "delete"
)

// Event is one change pushed over the realtime feed.
type Event struct {
	Action     EventAction     `json:"action"`
	Collection string          `json:"collection"`
	Record     json.RawMessage `json:"record"`
}

// Subscribe opens the realtime websocket for one collection and delivers its
// events until ctx is cancelled or the connection drops, after which the
// returned channel is closed. Reconnecting is the caller's concern.
func (c *Client) Subscribe(ctx context.Context, collection string) (<-chan Event, error) {
	wsURL, err := c.realtimeURL(collection)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if token := c.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, err
	}

	events := make(chan Event)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		log := logger.L().With(zap.String("collection", collection))

		for {
			var evt Event
			if err := conn.ReadJSON(&evt); err != nil {
				if ctx.Err() == nil {
					log.Warn("realtime connection closed", zap.Error(err))
				}
				return
			}

			select {
			case events <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (c *Client) realtimeURL(collection string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/api/realtime"
	q := u.Query()
	q.Set("collection", collection)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
