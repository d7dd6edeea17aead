// Package sigscan locates embedded binary containers inside raw byte
// buffers. It pairs magic-byte signature matching with per-format boundary
// detection: given an offset where a signature matches, each detector walks
// the format's own framing (PNG chunks, JPEG marker segments, GIF blocks,
// RIFF/BMP/ZIP size fields, the PDF trailer) to compute the exclusive end
// offset of the container.
//
// SigScan is part of [CarveKit] but can be used as a standalone package
// with zero external dependencies.
//
// [CarveKit]: https://github.com/gobeaver/carvekit
//
// # Detectors
//
// Every supported format implements the [Detector] interface:
//
//	det, _ := sigscan.Lookup(sigscan.KindPNG)
//	if det.Matches(data, 0) {
//	    if end, ok := det.FindEnd(data, 0); ok {
//	        png := data[:end]
//	        _ = png
//	    }
//	}
//
// FindEnd never returns an error: truncated or structurally invalid input
// reports ok == false and the caller decides how to degrade. The TIFF
// detector always reports ok == false because classic TIFF carries no
// end-of-container convention; callers fall back to heuristics.
//
// # Scanning
//
// [FindCandidates] runs every catalog signature over every offset of a
// buffer and returns the matches sorted by offset:
//
//	for _, c := range sigscan.FindCandidates(data) {
//	    fmt.Printf("%s at %d\n", c.Detector.Format().Label, c.Offset)
//	}
//
// The scan tests every offset against every signature. Inputs are
// expected to be bounded by the caller (a few MiB); at that scale the
// O(n x formats) pass stays well inside interactive latency.
package sigscan
