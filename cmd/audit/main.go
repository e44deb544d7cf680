// Command audit tails the co-brain audit stream and prints one JSON line per
// event to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"co-brain-be/internal/config"
	"co-brain-be/pkg/events"
	pktNats "co-brain-be/pkg/nats"
)

func main() {
	cfg := config.Load()

	url := flag.String("nats", cfg.App.NatsURL, "NATS server URL")
	eventType := flag.String("type", "", "only this event type, e.g. chat.replied")
	durable := flag.String("durable", "co-brain-audit-tail", "durable consumer name")
	flag.Parse()

	if *url == "" {
		log.Fatal("NATS_URL is not set and -nats was not given")
	}

	sub, err := pktNats.NewSubscriber(*url)
	if err != nil {
		log.Fatalf("Unable to connect: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	err = sub.Subscribe(ctx, *eventType, *durable, func(ctx context.Context, e events.Event) error {
		return enc.Encode(map[string]interface{}{
			"type":        e.EventType(),
			"occurred_at": e.Timestamp(),
			"data":        e.Payload(),
		})
	})
	if err != nil {
		log.Fatalf("Unable to subscribe: %v", err)
	}

	<-ctx.Done()
	fmt.Fprintln(os.Stderr, "audit tail stopped")
}
