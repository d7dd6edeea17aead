package carvekit

import "github.com/gobeaver/carvekit/sigscan"

// TrailingData is the byte range a file carries after its own container's
// logical end. Only PNG and JPEG hosts are supported; their framing makes
// the container end unambiguous.
type TrailingData struct {
	// ContainerEnd is the absolute offset where the host container ends
	ContainerEnd int

	// Length is the number of trailing bytes
	Length int

	// Bytes is the trailing slice of the scanned buffer. It aliases the
	// input; callers that outlive the buffer should copy it.
	Bytes []byte
}

// ExtractTrailingData locates the logical end of a PNG or JPEG file and
// returns everything after it. Returns nil when kind is not a supported
// host format, the signature does not match at offset zero, the container
// end cannot be located, or the container runs exactly to the end of the
// buffer.
func ExtractTrailingData(data []byte, kind sigscan.Kind) *TrailingData {
	if kind != sigscan.KindPNG && kind != sigscan.KindJPEG {
		return nil
	}
	det, ok := sigscan.Lookup(kind)
	if !ok {
		return nil
	}
	if !det.Matches(data, 0) {
		return nil
	}
	end, ok := det.FindEnd(data, 0)
	if !ok || end <= 0 || end >= len(data) {
		return nil
	}
	return &TrailingData{
		ContainerEnd: end,
		Length:       len(data) - end,
		Bytes:        data[end:],
	}
}
