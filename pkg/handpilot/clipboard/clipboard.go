// Package clipboard bridges the host clipboard to the relay: it joins a
// session, forwards the local clipboard whenever the Dispatcher signals a
// Copy, and writes back whatever text a peer sends.
package clipboard

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

type joinMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Name      string `json:"name,omitempty"`
}

type joinedMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

type clipboardSetMsg struct {
	Type string `json:"type"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

// Bridge owns the relay connection and the clipboard it reads from and
// writes to.
type Bridge struct {
	conn      *websocket.Conn
	name      string
	clipboard handpilot.ClipboardIO
	done      chan struct{}

	mu          sync.Mutex
	lastApplied string
}

// Dial connects to the relay at url, joins sessionID under the given peer
// name, and starts the background reader that applies incoming CLIPBOARD_SET
// messages. Blocks until the JOINED acknowledgement arrives or the dial
// fails.
func Dial(url, sessionID, name string, cb handpilot.ClipboardIO) (*Bridge, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("clipboard: dial %s: %w", url, err)
	}

	if err := conn.WriteJSON(joinMsg{Type: "JOIN", SessionID: sessionID, Name: name}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("clipboard: send JOIN: %w", err)
	}

	var joined joinedMsg
	if err := conn.ReadJSON(&joined); err != nil || joined.Type != "JOINED" {
		conn.Close()
		return nil, fmt.Errorf("clipboard: relay did not acknowledge JOIN")
	}

	b := &Bridge{conn: conn, name: name, clipboard: cb, done: make(chan struct{})}
	go b.readLoop()
	return b, nil
}

func (b *Bridge) readLoop() {
	defer close(b.done)
	for {
		_, raw, err := b.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clipboardSetMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type != "CLIPBOARD_SET" {
			continue
		}
		if err := b.clipboard.WriteText(msg.Text); err != nil {
			log.Printf("clipboard: write failed: %v", err)
			continue
		}
		b.mu.Lock()
		b.lastApplied = msg.Text
		b.mu.Unlock()
	}
}

// LastApplied returns the text most recently written to the host clipboard
// from a peer's CLIPBOARD_SET. Pollers use it to tell a genuine local copy
// apart from a change this bridge made itself.
func (b *Bridge) LastApplied() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastApplied
}

// SendLocalClipboard reads the host clipboard and sends it as a
// CLIPBOARD_SET message to the relay. Intended as the Dispatcher's OnCopy
// hook.
func (b *Bridge) SendLocalClipboard() {
	text, err := b.clipboard.ReadText()
	if err != nil {
		log.Printf("clipboard: read failed: %v", err)
		return
	}
	if err := b.conn.WriteJSON(clipboardSetMsg{Type: "CLIPBOARD_SET", From: b.name, Text: text}); err != nil {
		log.Printf("clipboard: send failed: %v", err)
	}
}

// Close closes the relay connection and waits for the read loop to exit.
func (b *Bridge) Close() error {
	err := b.conn.Close()
	<-b.done
	return err
}
