package sigscan

import "bytes"

// Detector locates one container format inside a byte buffer. Matches
// checks the format's signature at a given offset; FindEnd assumes the
// signature already matches at start and walks the format's framing to the
// exclusive end offset.
//
// FindEnd reports ok == false when the container is truncated, structurally
// invalid, or the format has no usable end convention. Malformed input is
// never an error condition.
type Detector interface {
	// Format returns the static metadata for this detector's format.
	Format() Format

	// Matches reports whether the format's signature is present at offset.
	Matches(data []byte, offset int) bool

	// FindEnd returns the exclusive end offset of the container whose
	// signature matches at start.
	FindEnd(data []byte, start int) (end int, ok bool)
}

// catalog is the fixed, ordered detector list. Order matters for candidate
// ties at the same offset: earlier entries are reported first.
var catalog = []Detector{
	pngDetector{},
	jpegDetector{},
	gifDetector{},
	webpDetector{},
	bmpDetector{},
	tiffDetector{},
	pdfDetector{},
	zipDetector{},
}

// Catalog returns the shared detector list. The slice and its entries are
// read-only catalog data; callers must not modify it.
func Catalog() []Detector {
	return catalog
}

// Lookup returns the catalog detector for the given kind.
func Lookup(kind Kind) (Detector, bool) {
	for _, det := range catalog {
		if det.Format().Kind == kind {
			return det, true
		}
	}
	return nil, false
}

// matchAt reports whether data carries the exact byte sequence sig at
// offset, with bounds checking.
func matchAt(data []byte, offset int, sig []byte) bool {
	if offset < 0 || offset+len(sig) > len(data) {
		return false
	}
	return bytes.Equal(data[offset:offset+len(sig)], sig)
}
