// Command handpilot-relay runs the standalone clipboard/control relay
// server a desktop handpilot client and a phone companion app use to find
// each other without either side needing to be reachable directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarinacheng/handpilot/pkg/handpilot/relay"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:8765", "listen address for the relay server")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "handpilot-relay - clipboard/control relay server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	srv := &http.Server{
		Addr:    *addr,
		Handler: relay.New(),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("handpilot-relay: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Printf("handpilot-relay: listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("handpilot-relay: %v", err)
	}
}
