package warmcli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	cws "github.com/coder/websocket"
)

// EventHandler processes one warming event notification. The raw params
// of the notification are passed through for the handler to decode.
type EventHandler func(params json.RawMessage) error

// EventHandlers maps notification method names (common.Notify*) to the
// handler invoked for them. Notifications without a handler are dropped.
type EventHandlers map[string]EventHandler

// notification is an incoming JSON-RPC notification frame from the
// daemon's event stream.
type notification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Listen connects to the daemon's websocket event stream and dispatches
// incoming notifications to the given handlers. It blocks until ctx is
// cancelled, a handler returns an error, or the stream closes.
func (c *Client) Listen(ctx context.Context, handlers EventHandlers) error {
	wsURL := toWebSocketURL(c.baseURL) + "/events"
	hdr := http.Header{}
	if c.secret != "" {
		hdr.Set("Authorization", "Bearer "+c.secret)
	}
	conn, _, err := cws.Dial(ctx, wsURL, &cws.DialOptions{
		HTTPClient: c.hc,
		HTTPHeader: hdr,
	})
	if err != nil {
		return fmt.Errorf("error connecting to event stream: %w", err)
	}
	defer conn.Close(cws.StatusNormalClosure, "")

	for {
		_, buf, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if cws.CloseStatus(err) == cws.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("error reading event stream: %w", err)
		}
		if err := dispatch(buf, handlers); err != nil {
			return err
		}
	}
}

// dispatch routes one event frame to its handler. Unknown methods are
// dropped silently so the daemon can grow new notifications.
func dispatch(buf []byte, handlers EventHandlers) error {
	var n notification
	if err := json.Unmarshal(buf, &n); err != nil {
		return fmt.Errorf("failed to parse event (%s): '%s'", err.Error(), string(buf))
	}
	h, ok := handlers[n.Method]
	if !ok {
		return nil
	}
	return h(n.Params)
}

func toWebSocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
