package clipboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) ReadText() (string, error) { return f.text, nil }
func (f *fakeClipboard) WriteText(s string) error  { f.text = s; return nil }

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// fakeRelay acknowledges JOIN then echoes back whatever it receives, close
// enough to the real relay's forwarding behaviour to exercise Bridge.
func fakeRelay(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		var join joinMsg
		if err := ws.ReadJSON(&join); err != nil {
			return
		}
		ws.WriteJSON(joinedMsg{Type: "JOINED", SessionID: join.SessionID})

		for {
			_, raw, err := ws.ReadMessage()
			if err != nil {
				return
			}
			ws.WriteMessage(websocket.TextMessage, raw)
		}
	})
	ts := httptest.NewServer(mux)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestDialJoinsAndSendLocalClipboardRoundTrips(t *testing.T) {
	ts, url := fakeRelay(t)
	defer ts.Close()

	cb := &fakeClipboard{text: "hello from host"}
	b, err := Dial(url, "sess1", "host-a", cb)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer b.Close()

	b.SendLocalClipboard()

	time.Sleep(100 * time.Millisecond)
	if cb.text != "hello from host" {
		t.Fatalf("expected echoed CLIPBOARD_SET to write back the same text, got %q", cb.text)
	}
}
