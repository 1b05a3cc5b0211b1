// Package pdftest writes small single-font PDF documents for tests.
//
// Every glyph is 500/1000 em wide, so a string of n characters set at size s
// is n*s/2 points wide. Strings are written as single bytes, so only ASCII
// text round-trips.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Text is one string placed on a page.
type Text struct {
	X, Y float64
	Size float64
	Bold bool
	S    string
}

// Doc describes a document to build.
type Doc struct {
	Pages    [][]Text
	Producer string
	Subject  string
}

const (
	catalogObj = 1
	pagesObj   = 2
	regularObj = 3
	boldObj    = 4
	infoObj    = 5
	firstPage  = 6
)

// Build renders doc as a PDF file.
func Build(doc Doc) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(doc.Pages))
	for i := range doc.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	obj(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj))
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(doc.Pages)))
	obj(font("Helvetica"))
	obj(font("Helvetica-Bold"))
	obj(fmt.Sprintf("<< /Producer (%s) /Subject (%s) >>", escape(doc.Producer), escape(doc.Subject)))

	for i, texts := range doc.Pages {
		obj(fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> /Contents %d 0 R >>",
			pagesObj, regularObj, boldObj, firstPage+2*i+1,
		))
		content := pageContent(texts)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, catalogObj, infoObj, xref)

	return buf.Bytes()
}

func font(name string) string {
	widths := strings.TrimSpace(strings.Repeat("500 ", 126-32+1))
	return fmt.Sprintf(
		"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
		name, widths,
	)
}

func pageContent(texts []Text) string {
	var sb strings.Builder
	for _, t := range texts {
		fontName := "F1"
		if t.Bold {
			fontName = "F2"
		}
		size := t.Size
		if size == 0 {
			size = 10
		}
		fmt.Fprintf(&sb, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", fontName, size, t.X, t.Y, escape(t.S))
	}
	return sb.String()
}

// escape quotes s for a PDF literal string.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
