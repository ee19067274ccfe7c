// Package imaging decodes uploaded invoice images and prepares them for OCR.
//
// The preparation pipeline mirrors what Tesseract responds best to for
// printed invoices: a grayscale conversion, optionally followed by global
// binarization. Binarization is off by default; scans of thermal-printer
// invoices tend to lose faint strokes when thresholded, so the grayscale
// image is usually what gets handed to the OCR engine.
//
// # Supported Formats
//
// Decode accepts PNG, JPEG, and GIF. Format detection is based on the
// stream contents, not a filename.
//
// # Thresholding
//
// Threshold applies a global cutoff. When no level is given, OtsuLevel
// computes one from the gray-level histogram, which works well for the
// bimodal dark-text-on-light-paper images this service receives.
package imaging
