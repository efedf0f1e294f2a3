package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serve      = flag.Bool("serve", false, "run the vector session server instead of the demo")
	configPath = flag.String("config", "", "JSON config file")
	addr       = flag.String("addr", "", "address to listen on (overrides config)")
	dbPath     = flag.String("db", "", "sqlite database path (overrides config)")
	mint       = flag.String("mint", "", "print a token for this name and exit")
)

func main() {
	flag.Parse()

	if !*serve && *mint == "" {
		runDemo(os.Stdout)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	if *mint != "" {
		token, err := mintToken(cfg.Secret, *mint, cfg.tokenTTL)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		return
	}

	if err := runServer(cfg); err != nil {
		log.Fatal(err)
	}
}

func runServer(cfg Config) error {
	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: newServer(cfg, store).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sigCh:
	}

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown does not wait for hijacked websocket connections.
	return httpServer.Shutdown(ctx)
}
