package websocket

import (
	"time"

	"dining-reviews/internal/models"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// Location filters the feed; empty or the index feed receives every location.
	Location string
}

func NewClient(hub *Hub, conn *websocket.Conn, location string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		Location: location,
	}
}

func (c *Client) wants(location string) bool {
	return c.Location == "" || c.Location == models.IndexFeed || c.Location == location
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
