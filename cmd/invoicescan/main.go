// invoicescan receives invoice image uploads, extracts their contents with
// Tesseract OCR, and appends the parsed rows to a Google Sheets
// spreadsheet.
//
// To start the server:
//
//	invoicescan -address :8000 \
//	            -credential-file ./service_account.json \
//	            -spreadsheet-id <id>
//
// The server accepts:
//   - POST /extract-invoice-data/  multipart upload, field "image"
//   - GET  /healthz                OCR availability probe
//   - GET  /metrics                Prometheus metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/breadbasket/invoicescan/internal/imaging"
	"github.com/breadbasket/invoicescan/internal/ocr"
	"github.com/breadbasket/invoicescan/internal/server"
	"github.com/breadbasket/invoicescan/internal/sheets"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	address             = flag.String("address", ":8000", "listen address with port.")
	credentialFile      = flag.String("credential-file", "service_account.json", "service account credential json file.")
	spreadsheetID       = flag.String("spreadsheet-id", "", "target Google Sheets spreadsheet ID.")
	summarySheet        = flag.String("summary-sheet", "Sheet1", "tab receiving one summary row per invoice.")
	itemsSheet          = flag.String("items-sheet", "Sheet2", "tab receiving one row per line item.")
	language            = flag.String("language", "eng", "Tesseract language code.")
	maxUploadBytes      = flag.Int64("max-upload-bytes", 10<<20, "upload size cap in bytes.")
	binarize            = flag.Bool("binarize", false, "threshold images before OCR instead of plain grayscale.")
	shutdownGracePeriod = flag.Duration("shutdown-grace-period", 30*time.Second, "time allowed for in-flight requests on shutdown.")
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("invoicescan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := innerMain(); err != nil {
		log.Fatalf("Exiting due to an error: %s", err)
	}
	log.Printf("Exiting successfully")
}

func innerMain() error {
	flag.Parse()
	ctx := context.Background()

	appender, err := sheets.NewClient(ctx, *credentialFile, *spreadsheetID)
	if err != nil {
		return fmt.Errorf("google sheets client error: %w", err)
	}

	engine := ocr.NewTesseractEngine()
	if info := engine.Info(); info.Available {
		log.Printf("Tesseract %s ready (tessdata prefix %q)", info.Version, info.TessdataPrefix)
	} else {
		// Start anyway; /healthz reports degraded until the host is fixed.
		log.Printf("OCR backend unavailable: %s", info.Error)
	}

	debug := os.Getenv("INVOICESCAN_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("invoicescan %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(server.Config{
		Address:             *address,
		SummarySheet:        *summarySheet,
		ItemsSheet:          *itemsSheet,
		Language:            *language,
		MaxUploadBytes:      *maxUploadBytes,
		Preprocess:          imaging.Options{Binarize: *binarize},
		ShutdownGracePeriod: *shutdownGracePeriod,
		Debug:               debug,
	}, engine, appender)

	return srv.Run()
}
