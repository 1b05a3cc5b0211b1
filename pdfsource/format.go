package pdfsource

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format is the kind of document an upload or file turned out to be.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Word indicates a Word (.docx) resume, a common wrong upload.
	Word
	// OpenDocument indicates an OpenDocument Text (.odt) resume.
	OpenDocument
	// HTML indicates an HTML page.
	HTML
)

// headerWindow is how far into a file the PDF header may start. Viewers
// accept leading garbage before %PDF, so uploads occasionally carry some.
const headerWindow = 1024

var pdfHeader = []byte("%PDF-")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Word:
		return "DOCX"
	case OpenDocument:
		return "ODT"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// FormatFromName guesses the format from a file name's extension.
func FormatFromName(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return Word
	case ".odt":
		return OpenDocument
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// Sniff determines the format of data from its content.
func Sniff(data []byte) Format {
	f, _ := SniffReader(bytes.NewReader(data), int64(len(data)))
	return f
}

// SniffReader determines the format of a document from its content. ZIP
// containers are opened to tell Word and OpenDocument files apart.
func SniffReader(r io.ReaderAt, size int64) (Format, error) {
	head := make([]byte, headerWindow)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	head = head[:n]

	switch {
	case bytes.Contains(head, pdfHeader):
		return PDF, nil
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return sniffZIP(r, size)
	case looksLikeHTML(head):
		return HTML, nil
	}
	return Unknown, nil
}

func looksLikeHTML(head []byte) bool {
	upper := strings.ToUpper(strings.TrimSpace(string(head)))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"), strings.HasPrefix(upper, "<HTML"):
		return true
	case strings.HasPrefix(upper, "<?XML"):
		return strings.Contains(upper, "<HTML")
	}
	return false
}

func sniffZIP(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "mimetype":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			mime, _ := io.ReadAll(io.LimitReader(rc, 256))
			rc.Close()
			if strings.Contains(string(mime), "application/vnd.oasis.opendocument.text") {
				return OpenDocument, nil
			}
		case strings.HasPrefix(f.Name, "word/"):
			return Word, nil
		}
	}
	return Unknown, nil
}
