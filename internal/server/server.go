package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/breadbasket/invoicescan/internal/imaging"
	"github.com/breadbasket/invoicescan/internal/ocr"
	"github.com/breadbasket/invoicescan/internal/sheets"
)

// Config carries the server's runtime settings.
type Config struct {
	// Address is the listen address. Empty means ":8000".
	Address string

	// SummarySheet is the tab receiving one row per invoice.
	// Empty means "Sheet1".
	SummarySheet string

	// ItemsSheet is the tab receiving one row per line item.
	// Empty means "Sheet2".
	ItemsSheet string

	// Language is the Tesseract language code. Empty means "eng".
	Language string

	// MaxUploadBytes caps the request body. Zero means 10 MiB.
	MaxUploadBytes int64

	// Preprocess controls the image preparation applied before OCR.
	Preprocess imaging.Options

	// ShutdownGracePeriod is how long in-flight requests get to finish
	// after SIGINT/SIGTERM. Zero means 30 seconds.
	ShutdownGracePeriod time.Duration

	// Debug enables logging of raw OCR output and image statistics.
	Debug bool
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = ":8000"
	}
	if c.SummarySheet == "" {
		c.SummarySheet = "Sheet1"
	}
	if c.ItemsSheet == "" {
		c.ItemsSheet = "Sheet2"
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 10 << 20
	}
	if c.ShutdownGracePeriod == 0 {
		c.ShutdownGracePeriod = 30 * time.Second
	}
	return c
}

// Server handles HTTP requests for invoice extraction.
type Server struct {
	cfg      Config
	engine   ocr.Engine
	appender sheets.Appender
}

// New creates a server around an OCR engine and a sheet appender.
func New(cfg Config, engine ocr.Engine, appender sheets.Appender) *Server {
	return &Server{
		cfg:      cfg.withDefaults(),
		engine:   engine,
		appender: appender,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract-invoice-data/", s.extractHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run serves until the process receives SIGINT or SIGTERM, then shuts down
// gracefully within the configured grace period.
func (s *Server) Run() error {
	svr := http.Server{
		Addr:    s.cfg.Address,
		Handler: s.Handler(),
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		received := <-sig
		log.Printf("received %s, shutting down within %s", received, s.cfg.ShutdownGracePeriod)

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGracePeriod)
		defer cancel()
		if err := svr.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("listening on %s", s.cfg.Address)
	if err := svr.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	<-idleConnsClosed
	return nil
}

// healthHandler reports whether the OCR backend is usable. A degraded
// backend answers 503 so load balancers can stop routing uploads here.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	info := s.engine.Info()

	status := http.StatusOK
	state := "ok"
	if !info.Available {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	writeJSON(w, "healthz", status, map[string]interface{}{
		"status": state,
		"ocr":    info,
	})
}
