// Package ocr provides Optical Character Recognition using Tesseract.
//
// This package wraps the Tesseract engine (via gosseract/v2) behind an
// Engine interface so that handlers can be exercised with a fake in tests.
// The production implementation, TesseractEngine, recognizes text from
// in-memory images and returns the full text together with word-level
// regions and confidence scores.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// When language data lives outside the default location, set the
// TESSDATA_PREFIX environment variable to the tessdata directory; the
// engine passes it through to Tesseract.
//
// # Page Segmentation
//
// Invoices are a single uniform block of text, so recognition defaults to
// page segmentation mode 6 (PSMSingleBlock). PSMAuto is available for
// uploads with less regular layout.
package ocr
