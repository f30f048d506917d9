package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

const (
	socketBufferSize  = 1024
	messageBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  socketBufferSize,
	WriteBufferSize: socketBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Hub pushes finished runs to every connected browser.
type Hub struct {
	// forward holds messages waiting to go out to all clients.
	forward chan []byte
	join    chan *hubClient
	leave   chan *hubClient
	done    chan struct{}
	clients map[*hubClient]bool
	count   atomic.Int32
}

type hubClient struct {
	socket *websocket.Conn
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		forward: make(chan []byte, messageBufferSize),
		join:    make(chan *hubClient),
		leave:   make(chan *hubClient),
		done:    make(chan struct{}),
		clients: make(map[*hubClient]bool),
	}
}

// Run serves joins, leaves and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			close(c.send)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.join:
			h.clients[c] = true
			h.count.Add(1)
			log.Println("hub: client joined")
		case c := <-h.leave:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.count.Add(-1)
			}
			log.Println("hub: client left")
		case msg := <-h.forward:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					log.Println("hub: client too slow, message dropped")
				}
			}
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Broadcast queues msg for all clients. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.forward <- msg:
	default:
		log.Println("hub: broadcast queue full, message dropped")
	}
}

func (h *Hub) BroadcastJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(payload)
	return nil
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("hub: websocket upgrade error: %v", err)
		return
	}
	c := &hubClient{
		socket: socket,
		send:   make(chan []byte, messageBufferSize),
	}

	select {
	case h.join <- c:
	case <-h.done:
		socket.Close()
		return
	}
	defer func() {
		select {
		case h.leave <- c:
		case <-h.done:
		}
	}()

	go c.write()
	c.read()
}

// read discards incoming frames; it returns when the peer goes away.
func (c *hubClient) read() {
	defer c.socket.Close()
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *hubClient) write() {
	defer c.socket.Close()
	for msg := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
