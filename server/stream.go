package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// evaluationStream fans two kinds of frame out to every connected
// client: a one-shot evaluate_fielders decision record each time that
// diagnostic endpoint is called, and, for any simulate-at-bat whose ball
// reaches the tick loop, one frame per tick carrying every fielder's
// position and state — the live Pass-1/Pass-2 trace named in
// SPEC_FULL.md §4, driven by engine.SimulateAtBatWithTrace's TickTracer
// rather than by replaying the final outcome. Grounded on the
// register/unregister/broadcast hub shape used for streaming live table
// updates, simplified to a single fan-out channel since this stream has
// no per-user routing.
type evaluationStream struct {
	mu      sync.RWMutex
	clients map[*streamClient]bool
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func newEvaluationStream() *evaluationStream {
	return &evaluationStream{clients: make(map[*streamClient]bool)}
}

func (s *evaluationStream) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Warning: websocket upgrade failed: %v", err)
		return
	}

	client := &streamClient{conn: conn, send: make(chan []byte, 16)}
	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go client.writePump(s)
	go client.readPump(s)
}

// streamFrame tags a broadcast payload with its kind so a client can tell
// a one-shot evaluation apart from a live tick of an in-progress at-bat.
type streamFrame struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

func (s *evaluationStream) broadcastEvaluation(records []fielderDecisionJSON) {
	s.broadcast(streamFrame{Kind: "evaluation", Data: records})
}

func (s *evaluationStream) broadcastTick(snapshot tickSnapshotJSON) {
	s.broadcast(streamFrame{Kind: "tick", Data: snapshot})
}

func (s *evaluationStream) broadcast(frame streamFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("Warning: failed to marshal stream payload: %v", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for client := range s.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop the frame rather than block the
			// diagnostic request that produced it.
		}
	}
}

// hasClients reports whether any websocket client is currently connected,
// letting a caller skip building per-tick trace payloads nobody will see.
func (s *evaluationStream) hasClients() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients) > 0
}

func (s *evaluationStream) remove(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *evaluationStream) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
		close(c.send)
		delete(s.clients, c)
	}
}

func (c *streamClient) readPump(s *evaluationStream) {
	defer func() {
		s.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *streamClient) writePump(s *evaluationStream) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
