package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-sphere-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webServer := server.NewServer(*port)
	log.Printf("Sphere path tracer web server, try http://localhost:%d/api/render?scene=pinhole", *port)

	errs := make(chan error, 1)
	go func() { errs <- webServer.Start() }()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Error starting server: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down: %v", err)
			os.Exit(1)
		}
	}
}
