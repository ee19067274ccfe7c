// Package server exposes the invoice extraction pipeline over HTTP.
//
// The surface is intentionally small:
//
//   - POST /extract-invoice-data/ : multipart upload (field "image"),
//     returns the parsed invoice as JSON after exporting it to Google
//     Sheets.
//   - GET /healthz : OCR backend availability probe.
//   - GET /metrics : Prometheus metrics.
//
// Errors are returned as JSON objects with a single "detail" field: 400
// for problems with the upload itself, 500 for OCR and spreadsheet
// failures.
//
// The server depends on the ocr.Engine and sheets.Appender interfaces, so
// the whole request path is testable without Tesseract or network access.
package server
