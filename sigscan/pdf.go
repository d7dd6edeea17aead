package sigscan

import "bytes"

var (
	pdfSignature = []byte("%PDF-")
	pdfEOF       = []byte("%%EOF")
)

type pdfDetector struct{}

func (pdfDetector) Format() Format {
	return Format{
		Kind:      KindPDF,
		Label:     "PDF document",
		Extension: ".pdf",
		MIME:      "application/pdf",
		Signature: "25 50 44 46 2D",
		Strategy:  "located the last end-of-file marker",
		Heuristic: true,
	}
}

func (pdfDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, pdfSignature)
}

// FindEnd takes the last %%EOF marker after the header. Incremental updates
// append new xref sections each ending in %%EOF, so the final one closes
// the document. Trailing newlines and spaces after the marker are kept.
func (pdfDetector) FindEnd(data []byte, start int) (int, bool) {
	idx := bytes.LastIndex(data[start:], pdfEOF)
	if idx < 0 {
		return 0, false
	}
	end := start + idx + len(pdfEOF)
	for end < len(data) {
		switch data[end] {
		case '\r', '\n', ' ', '\t':
			end++
		default:
			return end, true
		}
	}
	return end, true
}
