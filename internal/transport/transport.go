// Package transport is the thin adapter between the session and the
// realtime channel. It maps outbound requests and inbound pushes onto
// websocket JSON frames and nothing more: no buffering, no retries, no
// reordering.
package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"k8s.io/klog/v2"

	"wordrace/internal/protocol"
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 2 * time.Second
)

// Channel is one live connection to the game server.
type Channel struct {
	conn *websocket.Conn
}

// Dial connects to the game server's websocket endpoint.
func Dial(ctx context.Context, url string) (*Channel, error) {
	klog.Infof("transport: connecting to %s", url)
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", url, err)
	}
	return &Channel{conn: conn}, nil
}

// Send writes one message with a short timeout. Implements session.Transport.
func (c *Channel) Send(msg protocol.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Event, err)
	}
	return nil
}

// ReadLoop delivers inbound pushes to handle until the connection breaks,
// then calls closed (if non-nil). Run it on its own goroutine.
func (c *Channel) ReadLoop(ctx context.Context, handle func(protocol.Message), closed func(err error)) {
	klog.V(1).Infof("transport: read loop started")
	for {
		var msg protocol.Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			klog.Errorf("transport: read error: %v", err)
			if closed != nil {
				closed(err)
			}
			return
		}
		klog.V(1).Infof("transport: received %s", msg.Event)
		handle(msg)
	}
}

// Close tears the connection down immediately.
func (c *Channel) Close() {
	c.conn.CloseNow()
}
