package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"co-brain-be/internal/bootstrap"
	"co-brain-be/internal/config"
	"co-brain-be/internal/server"
	"co-brain-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	printBanner(cfg)

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Unable to start event consumer: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		srv.Shutdown()
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

func printBanner(cfg *config.Config) {
	bold := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	missing := color.New(color.FgYellow)

	bold.Println("Co-Brain backend")
	for _, p := range []struct {
		name, key, model string
	}{
		{"Gemini", cfg.Keys.Gemini, cfg.Ai.GeminiModel},
		{"OpenAI", cfg.Keys.OpenAI, cfg.Ai.OpenAIModel},
		{"Anthropic", cfg.Keys.Anthropic, cfg.Ai.AnthropicModel},
	} {
		if p.key != "" {
			ok.Printf("  ✓ %-9s %s (default key from env)\n", p.name, p.model)
		} else {
			missing.Printf("  • %-9s %s (no default key, set per session)\n", p.name, p.model)
		}
	}
	if cfg.App.NatsURL == "" {
		missing.Println("  • audit stream disabled (NATS_URL not set)")
	}
	bold.Printf("  listening on :%s\n", cfg.App.Port)
}
