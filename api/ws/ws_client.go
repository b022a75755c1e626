package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/session"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

type ClientOptions struct {
	SendBuffer        int
	MaxMessageBytes   int64
	MessagesPerSecond float64
	Burst             int
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		SendBuffer:        256,
		MaxMessageBytes:   1 << 20,
		MessagesPerSecond: 20,
		Burst:             30,
	}
}

type MessageHandler func(client *Client, messageBytes []byte)

// Client is a middleman between the websocket connection and the hub. It is
// the hub.Channel registered for its user.
type Client struct {
	conn    *websocket.Conn
	handler MessageHandler
	send    chan []byte
	limiter *rate.Limiter
	maxSize int64

	session *session.Session

	closeOnce   sync.Once
	done        chan struct{}
	closeCode   int
	closeReason string
}

var _ hub.Channel = (*Client)(nil)

func NewClient(conn *websocket.Conn, opts ClientOptions, handler MessageHandler) *Client {
	return &Client{
		conn:    conn,
		handler: handler,
		send:    make(chan []byte, opts.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(opts.MessagesPerSecond), opts.Burst),
		maxSize: opts.MaxMessageBytes,
		done:    make(chan struct{}),
	}
}

// UserId is the authenticated user, or "" before authentication.
func (c *Client) UserId() string {
	if c.session == nil {
		return ""
	}
	return c.session.UserId()
}

// Deliver queues a frame without blocking. A client whose buffer is full is
// closed so that it resynchronises on reconnect.
func (c *Client) Deliver(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		log.Warnf("ws: send buffer full for user %s, closing connection", c.UserId())
		c.closeWith(websocket.CloseTryAgainLater, "Slow consumer")
		return false
	}
}

func (c *Client) Close(reason string) {
	c.closeWith(websocket.CloseNormalClosure, reason)
}

func (c *Client) closeWith(code int, reason string) {
	c.closeOnce.Do(func() {
		c.closeCode = code
		c.closeReason = reason
		close(c.done)
	})
}

func (c *Client) ReadPump() {
	defer func() {
		if c.session != nil {
			c.session.Close()
		}
		c.closeWith(websocket.CloseNormalClosure, "")
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.maxSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		messageType, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warnf("ws: close error: %v", err)
			}
			return
		}

		if !c.limiter.Allow() {
			log.Warnf("ws: closing connection for user %s: message rate limit exceeded", c.UserId())
			c.closeWith(websocket.ClosePolicyViolation, "Rate limit exceeded")
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}
		c.handler(c, messageBytes)
	}
}

func (c *Client) WritePump(shutdownCtx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debugf("ws: send error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.flush()
			c.writeClose(c.closeCode, c.closeReason)
			return

		case <-shutdownCtx.Done():
			c.writeClose(websocket.CloseGoingAway, "Server shutting down")
			return
		}
	}
}

// flush writes frames queued before the client was closed.
func (c *Client) flush() {
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) writeClose(code int, reason string) {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait),
	)
}
