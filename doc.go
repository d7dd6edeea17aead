// Package carvekit detects and carves files embedded inside byte buffers,
// and extracts bit-plane streams from pixel data for the same treatment.
//
// CarveKit splits the work across two packages: the signature catalog and
// per-format boundary walkers live in the dependency-free
// github.com/gobeaver/carvekit/sigscan submodule, while this package adds
// the carving orchestrator, trailing-data location, bit-plane extraction,
// payload digests, selectors and the configured [Carver] service.
//
// # Carving
//
// [DetectCarvedPayloads] tries every catalog signature at every offset and
// resolves each match to a concrete span:
//
//	payloads := carvekit.DetectCarvedPayloads(data)
//	for _, p := range payloads {
//	    fmt.Printf("%s at %d..%d (%s)\n", p.Label, p.Start, p.End, p.Confidence)
//	}
//
// A payload's confidence reflects how its end offset was found: high when
// the format's own framing produced it, medium when a content heuristic
// did, and low when the payload was carved to the next signature or the
// end of the buffer.
//
// Scans accept options:
//
//	payloads := carvekit.DetectCarvedPayloads(data,
//	    carvekit.WithMaxFindings(8),
//	    carvekit.WithKinds(sigscan.KindPNG, sigscan.KindZIP),
//	    carvekit.WithDigest(carvekit.ChecksumXXHash),
//	)
//
// # Trailing Data
//
// Files often carry extra bytes after their own container ends. For PNG
// and JPEG hosts, [ExtractTrailingData] slices those bytes off:
//
//	trailing := carvekit.ExtractTrailingData(fileBytes, sigscan.KindPNG)
//	if trailing != nil {
//	    payloads := carvekit.DetectCarvedPayloads(trailing.Bytes)
//	}
//
// # Bit-Plane Extraction
//
// [ExtractBitPlaneStream] walks a [Pixmap] in a configurable order and
// packs selected channel bits into a byte stream, the shape embedded
// payloads hide in:
//
//	planes := carvekit.LowBitPlanes(1, carvekit.ChannelRed,
//	    carvekit.ChannelGreen, carvekit.ChannelBlue)
//	stream := carvekit.ExtractBitPlaneStream(pix, planes,
//	    carvekit.DefaultBitExtractionOptions(), 1<<20)
//	payloads := carvekit.DetectCarvedPayloads(stream.Bytes)
//
// # Payload Selection
//
// The [PayloadSelector] interface enables flexible payload filtering:
//
//	selector := carvekit.And(
//	    carvekit.MatchMIME("image/*"),
//	    carvekit.MinLength(64),
//	)
//	payloads := carvekit.DetectCarvedPayloads(data, carvekit.WithSelector(selector))
//
// # Error Handling
//
// Detection treats malformed input as absence, not as an error: a walker
// that cannot find a container end simply reports nothing. Errors are
// reserved for misuse of the API, and come as sentinel errors with helper
// functions:
//
//	_, err := carver.Scan(hugeBuffer)
//	if carvekit.IsBufferTooLarge(err) {
//	    // Split or truncate the input
//	}
//
//	var scanErr *carvekit.ScanError
//	if errors.As(err, &scanErr) {
//	    fmt.Printf("Operation: %s, Size: %d\n", scanErr.Op, scanErr.Size)
//	}
//
// # Configuration
//
// CarveKit can be configured via environment variables with the CARVEKIT_
// prefix, or programmatically via the [Config] struct:
//
//	cfg := carvekit.Config{
//	    MaxScanBytes: 4 * 1024 * 1024,
//	    MaxFindings:  24,
//	    Formats:      "png,jpeg,zip",
//	}
//	carver, err := carvekit.New(&cfg)
//	payloads, err := carver.Scan(data)
package carvekit
