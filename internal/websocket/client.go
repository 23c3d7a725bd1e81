package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client pumps frames between one browser connection and the registry. It
// starts anonymous; receipt of an identity-claim frame registers it.
type Client struct {
	registry *Registry
	conn     *websocket.Conn
	send     chan Message
	done     chan struct{}
	log      zerolog.Logger
	once     sync.Once
}

func NewClient(registry *Registry, conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		registry: registry,
		conn:     conn,
		send:     make(chan Message, sendBuffer),
		done:     make(chan struct{}),
		log:      log,
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// shutdown stops the write pump. The send channel itself is never closed, so
// late enqueues from the read pump cannot panic; they are simply dropped.
func (c *Client) shutdown() {
	c.once.Do(func() { close(c.done) })
}

// Done is closed once the client has been torn down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) readPump() {
	defer func() {
		c.registry.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		switch frame.Type {
		case MessageTypeAuth:
			if frame.UserID != "" {
				c.registry.Register(frame.UserID, c)
			}
		case MessageTypePing:
			select {
			case c.send <- Message{Type: MessageTypePong}:
			default:
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Debug().Err(err).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
