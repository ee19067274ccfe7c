package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/breadbasket/invoicescan/internal/imaging"
	"github.com/breadbasket/invoicescan/internal/invoice"
	"github.com/breadbasket/invoicescan/internal/ocr"
)

// uploadField is the multipart form field carrying the invoice image.
const uploadField = "image"

type extractResponse struct {
	Status       string           `json:"status"`
	Data         *invoice.Invoice `json:"data"`
	SheetUpdated bool             `json:"sheet_updated"`
}

// extractHandler runs the full pipeline for one uploaded invoice image:
// decode, pre-process, OCR, parse, export to Sheets, respond with the
// structured data.
//
// The summary row is only exported when an invoice number was recognized;
// line items are exported whenever the table parsed. A Sheets failure
// fails the request, so a 200 response means the spreadsheet state matches
// the returned data.
func (s *Server) extractHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	id := fmt.Sprintf("%s %s", r.Method, r.URL.RequestURI())
	log.Printf("%s request started", id)
	defer func() { log.Printf("%s request completed in %s", id, time.Since(startTime)) }()

	if r.Method != http.MethodPost {
		writeError(w, "extract", http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, "extract", http.StatusBadRequest,
			fmt.Sprintf("multipart field %q is required: %s", uploadField, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "extract", http.StatusBadRequest,
			fmt.Sprintf("failed to read upload: %s", err))
		return
	}

	img, format, err := imaging.DecodeBytes(data)
	if err != nil {
		writeError(w, "extract", http.StatusBadRequest,
			fmt.Sprintf("unsupported or corrupt image: %s", err))
		return
	}

	prepared := imaging.Preprocess(img, s.cfg.Preprocess)
	if s.cfg.Debug {
		stats := imaging.Analyze(prepared)
		log.Printf("%s decoded %s %dx%d, mean lightness %.2f",
			id, format, img.Bounds().Dx(), img.Bounds().Dy(), stats.MeanLightness)
	}

	ocrStart := time.Now()
	result, err := s.engine.Recognize(prepared, ocr.Options{
		Language:    s.cfg.Language,
		PageSegMode: ocr.PSMSingleBlock,
	})
	if err != nil {
		writeError(w, "extract", http.StatusInternalServerError,
			fmt.Sprintf("OCR failed: %s", err))
		return
	}
	ocrDuration.Observe(time.Since(ocrStart).Seconds())

	if s.cfg.Debug {
		log.Printf("%s raw OCR text:\n%s", id, result.FullText)
	}

	inv := invoice.ParseText(result.FullText)

	ctx := r.Context()
	updated := false

	if inv.HasInvoiceNo() {
		if err := s.appender.Append(ctx, s.cfg.SummarySheet, inv.SummaryRow()); err != nil {
			writeError(w, "extract", http.StatusInternalServerError,
				fmt.Sprintf("failed to append summary row: %s", err))
			return
		}
		updated = true
	} else {
		log.Printf("%s skipping summary append, no invoice number recognized", id)
	}

	for _, row := range inv.ItemRows() {
		if err := s.appender.Append(ctx, s.cfg.ItemsSheet, row); err != nil {
			writeError(w, "extract", http.StatusInternalServerError,
				fmt.Sprintf("failed to append item row: %s", err))
			return
		}
		updated = true
	}

	writeJSON(w, "extract", http.StatusOK, extractResponse{
		Status:       "success",
		Data:         inv,
		SheetUpdated: updated,
	})
}

// writeJSON writes v as the response body with the given status code and
// counts the request in the handler metrics.
func writeJSON(w http.ResponseWriter, handler string, status int, v interface{}) {
	requestsTotal.WithLabelValues(handler, fmt.Sprint(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a JSON error body in the {"detail": ...} shape.
func writeError(w http.ResponseWriter, handler string, status int, detail string) {
	log.Printf("%s error %d: %s", handler, status, detail)
	writeJSON(w, handler, status, map[string]string{"detail": detail})
}
