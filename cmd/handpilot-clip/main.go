// Command handpilot-clip joins a relay session as a clipboard-only peer: it
// applies CLIPBOARD_SET messages from other peers to the local clipboard and
// forwards local clipboard changes back to the session. Run it on a machine
// without a camera to receive what a handpilot copy gesture captured
// elsewhere.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarinacheng/handpilot/pkg/handpilot/clipboard"
)

// pollInterval is how often the local clipboard is checked for changes worth
// forwarding; clipboard APIs offer no change notification, so polling is the
// only portable option.
const pollInterval = time.Second

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "handpilot-clip - clipboard relay peer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s <ws-uri> <session-id> <name>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}
	uri, sessionID, name := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	cb := clipboard.OSClipboard{}
	bridge, err := clipboard.Dial(uri, sessionID, name, cb)
	if err != nil {
		log.Fatalf("handpilot-clip: %v", err)
	}
	defer bridge.Close()
	log.Printf("handpilot-clip: joined session %s as %q", sessionID, name)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	last, _ := cb.ReadText()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			log.Println("handpilot-clip: shutting down")
			return
		case <-ticker.C:
			text, err := cb.ReadText()
			if err != nil || text == last {
				continue
			}
			last = text
			if text == bridge.LastApplied() {
				continue
			}
			bridge.SendLocalClipboard()
		}
	}
}
