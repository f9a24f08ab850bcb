// Package relay implements the session-keyed websocket fan-out server a
// desktop client and a phone companion app use to exchange clipboard and
// control messages without either side needing to be reachable directly.
package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// pingInterval/pongWait mirror the original relay's websockets.serve
// keepalive (ping_interval=20, ping_timeout=20): the server pings every
// pingInterval and drops a peer that hasn't answered within pongWait.
const (
	pingInterval = 20 * time.Second
	pongWait     = 20 * time.Second
)

// Message is the minimal envelope the relay inspects; everything beyond
// Type and SessionID is forwarded verbatim.
type Message struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

type peer struct {
	id uuid.UUID
	ws *websocket.Conn
	mu sync.Mutex
}

func (p *peer) send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ws.WriteJSON(v)
}

// Server holds the session table: session id to the set of connected peers.
type Server struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]map[uuid.UUID]*peer
}

// New creates a relay Server ready to be handed to an http.Server as its
// handler.
func New() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]map[uuid.UUID]*peer),
	}
}

// ServeHTTP upgrades the connection and runs the per-connection handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("relay: upgrade: %v", err)
		return
	}
	s.handle(ws)
}

func (s *Server) handle(ws *websocket.Conn) {
	defer ws.Close()

	ws.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
		return nil
	})

	var first Message
	if err := ws.ReadJSON(&first); err != nil || first.Type != "JOIN" || first.SessionID == "" {
		ws.WriteJSON(Message{Type: "ERROR", Message: "First message must be JOIN with session_id"})
		return
	}

	p := &peer{id: uuid.New(), ws: ws}
	s.join(first.SessionID, p)
	defer s.leave(first.SessionID, p)

	p.send(Message{Type: "JOINED", SessionID: first.SessionID})
	log.Printf("relay: client %s joined session=%s", p.id, first.SessionID)

	stopPing := make(chan struct{})
	go s.keepalive(ws, stopPing)
	defer close(stopPing)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			p.send(Message{Type: "ERROR", Message: "Invalid JSON"})
			continue
		}

		if msg.Type == "PING" {
			p.send(Message{Type: "PONG"})
			continue
		}

		s.broadcast(first.SessionID, p, json.RawMessage(raw))
	}
}

func (s *Server) keepalive(ws *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(pongWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) join(sessionID string, p *peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[uuid.UUID]*peer)
	}
	s.sessions[sessionID][p.id] = p
}

func (s *Server) leave(sessionID string, p *peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	peers := s.sessions[sessionID]
	if peers == nil {
		return
	}
	delete(peers, p.id)
	if len(peers) == 0 {
		delete(s.sessions, sessionID)
	}
	log.Printf("relay: client %s left session=%s remaining=%d", p.id, sessionID, len(peers))
}

// broadcast forwards raw to every other peer in sessionID, dropping any peer
// whose write fails.
func (s *Server) broadcast(sessionID string, sender *peer, raw json.RawMessage) {
	s.mu.Lock()
	peers := make([]*peer, 0, len(s.sessions[sessionID]))
	for _, p := range s.sessions[sessionID] {
		if p != sender {
			peers = append(peers, p)
		}
	}
	s.mu.Unlock()

	for _, p := range peers {
		if err := p.send(raw); err != nil {
			s.leave(sessionID, p)
		}
	}
}
