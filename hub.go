package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Session    *Session
	Connection *websocket.Conn

	writeMu sync.Mutex
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Connection.WriteJSON(v)
}

func (c *Client) writePrepared(msg *websocket.PreparedMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Connection.WritePreparedMessage(msg)
}

type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func newHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.Session.ID] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *Hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast encodes v once and writes it to every client, dropping the ones
// whose write fails. An encoding error is returned and nobody is dropped.
func (h *Hub) broadcast(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding broadcast: %w", err)
	}
	msg, err := websocket.NewPreparedMessage(websocket.TextMessage, b)
	if err != nil {
		return fmt.Errorf("preparing broadcast: %w", err)
	}

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.writePrepared(msg); err != nil {
			log.Printf("write error, removing client %s: %v", c.Session.ID, err)
			c.Connection.Close()
			h.remove(c.Session.ID)
		}
	}

	return nil
}
