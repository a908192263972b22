package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockLens/internal/di"
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "config file path")
	symbol := flag.String("symbol", "", "load one symbol, print its view as JSON and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if *symbol != "" {
		os.Exit(loadOnce(app, *symbol))
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

// loadOnce runs a single load and writes the view to stdout. It returns the
// process exit code.
func loadOnce(app *server.App, symbol string) int {
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vm, err := app.LoadOnce(ctx, symbol)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vm); err != nil {
		log.Printf("encode view: %v", err)
		return 1
	}
	return 0
}
