// Package normaliser turns raw business text into a canonical plain-text form.
//
// The Engine runs a fixed sequence of rewrite stages: markup stripping, Unicode
// normalisation, rich-text residue removal, emoji handling, optional PII masking,
// currency and abbreviation expansion, date masking, duplicate currency collapse,
// punctuation cleanup and numeral conversion. All regex tables are compiled once
// in New and never mutated, so a single Engine may be shared between goroutines.
//
// Running Normalise on its own output returns the same string.
package normaliser
