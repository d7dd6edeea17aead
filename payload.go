package carvekit

import (
	"fmt"

	"github.com/gobeaver/carvekit/sigscan"
)

// Confidence grades how a carved payload's end offset was determined.
type Confidence string

const (
	// ConfidenceHigh means the format's own framing produced the end.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means the end came from a format heuristic that
	// is usually right but can be fooled, such as the last %%EOF marker
	// of a PDF.
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow means the framing walk failed and the payload was
	// carved to the next candidate signature or the end of the buffer.
	ConfidenceLow Confidence = "low"
)

// rank orders confidences so selectors can compare them.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// CarvedPayload describes one container located inside a scanned buffer.
// Offsets index into the buffer that was scanned; the payload itself is
// not copied.
type CarvedPayload struct {
	// Kind identifies the detected format
	Kind sigscan.Kind

	// Label is a short human-readable format name, e.g. "PNG image"
	Label string

	// Extension is the conventional file extension including the dot
	Extension string

	// MIME is the format's media type
	MIME string

	// Signature describes the magic bytes that matched at Start
	Signature string

	// Start is the first byte offset of the payload
	Start int

	// End is the exclusive end offset of the payload
	End int

	// Length is End - Start
	Length int

	// Confidence grades how End was determined
	Confidence Confidence

	// Strategy describes how End was located
	Strategy string

	// Digest is the payload checksum, when the scan computed one
	Digest string
}

// Bytes returns the payload's byte range within data. The result aliases
// data; callers that outlive the buffer should copy it. Returns nil when
// the payload's offsets do not fit data.
func (p CarvedPayload) Bytes(data []byte) []byte {
	if p.Start < 0 || p.End > len(data) || p.Start >= p.End {
		return nil
	}
	return data[p.Start:p.End]
}

// Preview returns at most n bytes from the front of the payload. Like
// Bytes, the result aliases data.
func (p CarvedPayload) Preview(data []byte, n int) []byte {
	b := p.Bytes(data)
	if n < 0 {
		n = 0
	}
	if len(b) > n {
		b = b[:n]
	}
	return b
}

// Filename suggests a name for saving the payload, built from the format
// kind, the start offset, and the conventional extension.
func (p CarvedPayload) Filename() string {
	return fmt.Sprintf("%s_%d%s", p.Kind, p.Start, p.Extension)
}
