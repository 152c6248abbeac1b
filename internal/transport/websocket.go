// SPDX-License-Identifier: MIT
package transport

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	applog "sdrspect/internal/log"
)

// WebSocketPublisher implements Publisher over WebSocket connections.
// Viewers connect to /spectrogram and receive every published frame as a
// JSON message. Slow consumers are dropped rather than allowed to stall a
// publish.
type WebSocketPublisher struct {
	addr      string
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan *Frame
	server    *http.Server

	// lastFrame is replayed to viewers that connect after a publish, so a
	// finished run stays visible while the server lingers.
	lastFrame *Frame
}

// NewWebSocketPublisher creates a publisher and starts its server on addr.
func NewWebSocketPublisher(addr string) *WebSocketPublisher {
	p := &WebSocketPublisher{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan *Frame, 4),
	}
	p.start()
	return p
}

func (p *WebSocketPublisher) start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectrogram", p.handleWebSocket)

	p.server = &http.Server{
		Addr:    p.addr,
		Handler: mux,
	}

	go func() {
		applog.Infof("transport: serving spectrogram frames on ws://%s/spectrogram", p.addr)
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			applog.Errorf("transport: server error: %v", err)
		}
	}()

	go p.handleBroadcasts()
}

func (p *WebSocketPublisher) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Errorf("transport: upgrade error: %v", err)
		return
	}

	p.clientsMu.Lock()
	p.clients[conn] = true
	total := len(p.clients)
	last := p.lastFrame
	p.clientsMu.Unlock()
	applog.Infof("transport: viewer connected, total: %d", total)

	if last != nil {
		if err := conn.WriteJSON(last); err != nil {
			applog.Warnf("transport: replay to new viewer failed: %v", err)
		}
	}

	go func() {
		// Wait for close.
		if _, _, err := conn.ReadMessage(); err != nil {
			p.clientsMu.Lock()
			delete(p.clients, conn)
			total := len(p.clients)
			p.clientsMu.Unlock()
			conn.Close()
			applog.Infof("transport: viewer disconnected, total: %d", total)
		}
	}()
}

func (p *WebSocketPublisher) handleBroadcasts() {
	for frame := range p.broadcast {
		p.clientsMu.Lock()
		for client := range p.clients {
			if err := client.WriteJSON(frame); err != nil {
				applog.Warnf("transport: dropping viewer: %v", err)
				client.Close()
				delete(p.clients, client)
			}
		}
		p.clientsMu.Unlock()
	}
}

// Publish queues a frame for all connected viewers. A full queue drops the
// frame instead of blocking the pipeline.
func (p *WebSocketPublisher) Publish(frame *Frame) error {
	p.clientsMu.Lock()
	p.lastFrame = frame
	p.clientsMu.Unlock()
	select {
	case p.broadcast <- frame:
	default:
		applog.Warnf("transport: broadcast queue full, dropping frame")
	}
	return nil
}

// Close shuts down the server and all viewer connections.
func (p *WebSocketPublisher) Close() error {
	p.clientsMu.Lock()
	for client := range p.clients {
		client.Close()
	}
	p.clients = make(map[*websocket.Conn]bool)
	p.clientsMu.Unlock()

	if p.server != nil {
		return p.server.Close()
	}
	return nil
}

var _ Publisher = (*WebSocketPublisher)(nil)
