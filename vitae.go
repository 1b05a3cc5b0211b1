// Package vitae extracts structured resume data from PDF documents.
//
// Basic usage:
//
//	result, warnings, err := vitae.Open("resume.pdf").Parse()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", vitae.FormatWarnings(warnings))
//	}
//	fmt.Println(result.Resume.Profile.Name)
//
// Text already extracted by another PDF library can be parsed directly:
//
//	result, _, err := vitae.FromFragments(fragments).Parse()
//
// Parsing runs in stages, each available on its own: [Extractor.Fragments],
// [Extractor.Lines], [Extractor.Sections] and [Extractor.Parse]. Statements of
// consent to data processing are detected, reported in the result's privacy
// flags and removed before fields are extracted.
//
// For finer control the layout, scoring, extract and privacy packages can be
// used directly.
package vitae

import (
	"bytes"
	"io"

	"github.com/tsawler/vitae/text"
)

// Open returns an Extractor for the PDF file at filename. The file is read
// when a terminal operation such as Parse is called.
//
// Example:
//
//	result, warnings, err := vitae.Open("resume.pdf").Parse()
func Open(filename string) *Extractor {
	e := newExtractor(source{filename: filename})
	if filename == "" {
		e.err = ErrNoSource
	}
	return e
}

// FromReader returns an Extractor for a PDF of the given size read from r.
// The caller keeps ownership of r.
func FromReader(r io.ReaderAt, size int64) *Extractor {
	e := newExtractor(source{reader: r, size: size})
	if r == nil {
		e.err = ErrNoSource
	}
	return e
}

// FromBytes returns an Extractor for an in-memory PDF.
func FromBytes(data []byte) *Extractor {
	return FromReader(bytes.NewReader(data), int64(len(data)))
}

// FromFragments returns an Extractor over fragments already extracted from a
// document. The slice is copied.
//
// Example:
//
//	result, _, err := vitae.FromFragments(fragments).Parse()
func FromFragments(fragments []text.TextFragment) *Extractor {
	return newExtractor(source{
		fragments:    append([]text.TextFragment(nil), fragments...),
		hasFragments: true,
	})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	multi := vitae.Must(vitae.Open("resume.pdf").IsMultiColumn())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustParse is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	result := vitae.MustParse(vitae.Open("resume.pdf").Parse())
func MustParse[T any](val T, warnings []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
