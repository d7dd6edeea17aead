package carvekit

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gobeaver/carvekit/sigscan"
)

// appendChunk appends one PNG chunk: big-endian length, type, payload and
// a placeholder CRC.
func appendChunk(b []byte, typ string, payload []byte) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	b = append(b, length[:]...)
	b = append(b, typ...)
	b = append(b, payload...)
	return append(b, 0xDE, 0xAD, 0xBE, 0xEF)
}

// buildPNG returns a minimal 45-byte PNG: signature, IHDR and IEND.
func buildPNG() []byte {
	b := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	b = appendChunk(b, "IHDR", make([]byte, 13))
	return appendChunk(b, "IEND", nil)
}

// buildJPEG returns a minimal JPEG of 16+len(entropy) bytes: SOI, a
// 4-byte APP0 segment, a 4-byte SOS segment, the entropy bytes and EOI.
func buildJPEG(entropy []byte) []byte {
	b := []byte{
		0xFF, 0xD8,
		0xFF, 0xE0, 0x00, 0x04, 0x4A, 0x46,
		0xFF, 0xDA, 0x00, 0x04, 0x01, 0x02,
	}
	b = append(b, entropy...)
	return append(b, 0xFF, 0xD9)
}

// buildZIP returns a minimal ZIP: a local file header signature, ten
// filler bytes, the 22-byte end of central directory record and the
// comment. The record sits at offset 14.
func buildZIP(comment []byte) []byte {
	b := append([]byte("PK\x03\x04"), make([]byte, 10)...)
	eocd := make([]byte, 22)
	copy(eocd, "PK\x05\x06")
	binary.LittleEndian.PutUint16(eocd[20:], uint16(len(comment)))
	b = append(b, eocd...)
	return append(b, comment...)
}

// buildBMP returns a minimal 26-byte BMP: the BM signature followed by
// the declared file size.
func buildBMP() []byte {
	b := make([]byte, 26)
	copy(b, "BM")
	binary.LittleEndian.PutUint32(b[2:], 26)
	return b
}

// tiffMarker is the little-endian TIFF signature. TIFF carries no end
// marker, so every detection falls back to carving.
var tiffMarker = []byte{0x49, 0x49, 0x2A, 0x00}

func TestDetectCarvedPayloads(t *testing.T) {
	png := buildPNG()
	jpeg := buildJPEG([]byte{0x12, 0xFF, 0x00, 0x34})
	pdf := []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF\n")

	type want struct {
		kind       sigscan.Kind
		start      int
		end        int
		confidence Confidence
	}
	tests := []struct {
		name string
		data []byte
		want []want
	}{
		{
			name: "empty buffer",
			data: nil,
			want: nil,
		},
		{
			name: "no signatures",
			data: []byte("plain text with no containers"),
			want: nil,
		},
		{
			name: "png at start",
			data: png,
			want: []want{
				{sigscan.KindPNG, 0, 45, ConfidenceHigh},
			},
		},
		{
			name: "png after filler",
			data: append(make([]byte, 5), png...),
			want: []want{
				{sigscan.KindPNG, 5, 50, ConfidenceHigh},
			},
		},
		{
			name: "jpeg with stuffed entropy byte",
			data: jpeg,
			want: []want{
				{sigscan.KindJPEG, 0, 20, ConfidenceHigh},
			},
		},
		{
			name: "pdf end is heuristic",
			data: pdf,
			want: []want{
				{sigscan.KindPDF, 0, 35, ConfidenceMedium},
			},
		},
		{
			name: "back to back payloads",
			data: concat(buildJPEG([]byte{0xAA, 0xBB, 0xCC}), make([]byte, 3), buildZIP(nil)),
			want: []want{
				{sigscan.KindJPEG, 0, 19, ConfidenceHigh},
				{sigscan.KindZIP, 22, 58, ConfidenceHigh},
			},
		},
		{
			name: "tiff carves to the next signature",
			data: concat(tiffMarker, make([]byte, 4), png),
			want: []want{
				{sigscan.KindTIFF, 0, 8, ConfidenceLow},
				{sigscan.KindPNG, 8, 53, ConfidenceHigh},
			},
		},
		{
			name: "tiff carves to the buffer end",
			data: concat(tiffMarker, []byte{1, 2, 3}),
			want: []want{
				{sigscan.KindTIFF, 0, 7, ConfidenceLow},
			},
		},
		{
			name: "truncated zip carves to the buffer end",
			data: buildZIP(nil)[:20],
			want: []want{
				{sigscan.KindZIP, 0, 20, ConfidenceLow},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCarvedPayloads(tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectCarvedPayloads() returned %d payloads, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				p := got[i]
				if p.Kind != w.kind {
					t.Errorf("payload[%d].Kind = %q, want %q", i, p.Kind, w.kind)
				}
				if p.Start != w.start || p.End != w.end {
					t.Errorf("payload[%d] span = [%d:%d), want [%d:%d)", i, p.Start, p.End, w.start, w.end)
				}
				if p.Length != w.end-w.start {
					t.Errorf("payload[%d].Length = %d, want %d", i, p.Length, w.end-w.start)
				}
				if p.Confidence != w.confidence {
					t.Errorf("payload[%d].Confidence = %q, want %q", i, p.Confidence, w.confidence)
				}
			}
		})
	}
}

// concat joins byte slices into a fresh buffer.
func concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func TestDetectCarvedPayloadsMetadata(t *testing.T) {
	payloads := DetectCarvedPayloads(buildPNG())
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	p := payloads[0]
	if p.Label != "PNG image" {
		t.Errorf("Label = %q, want %q", p.Label, "PNG image")
	}
	if p.Extension != ".png" {
		t.Errorf("Extension = %q, want %q", p.Extension, ".png")
	}
	if p.MIME != "image/png" {
		t.Errorf("MIME = %q, want %q", p.MIME, "image/png")
	}
	if p.Strategy != "walked length-prefixed chunks through IEND" {
		t.Errorf("Strategy = %q", p.Strategy)
	}
	if p.Digest != "" {
		t.Errorf("Digest = %q, want empty without WithDigest", p.Digest)
	}
}

func TestDetectCarvedPayloadsFallbackStrategy(t *testing.T) {
	payloads := DetectCarvedPayloads(concat(tiffMarker, []byte{1, 2, 3}))
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	if payloads[0].Strategy != fallbackStrategy {
		t.Errorf("Strategy = %q, want %q", payloads[0].Strategy, fallbackStrategy)
	}
}

func TestDetectCarvedPayloadsNested(t *testing.T) {
	// A TIFF signature inside a tEXt chunk must surface as its own
	// payload alongside the hosting PNG.
	b := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	b = appendChunk(b, "IHDR", make([]byte, 13))
	b = appendChunk(b, "tEXt", tiffMarker)
	b = appendChunk(b, "IEND", nil)

	payloads := DetectCarvedPayloads(b)
	if len(payloads) != 2 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 2", len(payloads))
	}
	if payloads[0].Kind != sigscan.KindPNG || payloads[0].Start != 0 || payloads[0].End != len(b) {
		t.Errorf("payload[0] = %s [%d:%d), want png [0:%d)", payloads[0].Kind, payloads[0].Start, payloads[0].End, len(b))
	}
	if payloads[1].Kind != sigscan.KindTIFF || payloads[1].Start != 41 || payloads[1].End != len(b) {
		t.Errorf("payload[1] = %s [%d:%d), want tiff [41:%d)", payloads[1].Kind, payloads[1].Start, payloads[1].End, len(b))
	}
	if payloads[1].Confidence != ConfidenceLow {
		t.Errorf("payload[1].Confidence = %q, want %q", payloads[1].Confidence, ConfidenceLow)
	}
}

func TestWithMaxFindings(t *testing.T) {
	data := concat(buildBMP(), buildBMP(), buildBMP())

	tests := []struct {
		name string
		max  int
		want int
	}{
		{name: "default cap keeps all", max: DefaultMaxFindings, want: 3},
		{name: "cap below candidate count", max: 2, want: 2},
		{name: "cap of one", max: 1, want: 1},
		{name: "zero disables the scan", max: 0, want: 0},
		{name: "negative disables the scan", max: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCarvedPayloads(data, WithMaxFindings(tt.max))
			if len(got) != tt.want {
				t.Errorf("DetectCarvedPayloads() returned %d payloads, want %d", len(got), tt.want)
			}
		})
	}
}

func TestWithKinds(t *testing.T) {
	data := concat(buildJPEG([]byte{0xAA, 0xBB, 0xCC}), make([]byte, 3), buildZIP(nil))

	tests := []struct {
		name  string
		kinds []sigscan.Kind
		want  []sigscan.Kind
	}{
		{
			name:  "no restriction scans the whole catalog",
			kinds: nil,
			want:  []sigscan.Kind{sigscan.KindJPEG, sigscan.KindZIP},
		},
		{
			name:  "single kind",
			kinds: []sigscan.Kind{sigscan.KindZIP},
			want:  []sigscan.Kind{sigscan.KindZIP},
		},
		{
			name:  "kind not present in the buffer",
			kinds: []sigscan.Kind{sigscan.KindGIF},
			want:  nil,
		},
		{
			name:  "unknown kind matches nothing",
			kinds: []sigscan.Kind{sigscan.Kind("tar")},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCarvedPayloads(data, WithKinds(tt.kinds...))
			if len(got) != len(tt.want) {
				t.Fatalf("DetectCarvedPayloads() returned %d payloads, want %d", len(got), len(tt.want))
			}
			for i, kind := range tt.want {
				if got[i].Kind != kind {
					t.Errorf("payload[%d].Kind = %q, want %q", i, got[i].Kind, kind)
				}
			}
		})
	}
}

func TestWithSelector(t *testing.T) {
	data := concat(buildJPEG([]byte{0xAA, 0xBB, 0xCC}), make([]byte, 3), buildZIP(nil))

	payloads := DetectCarvedPayloads(data, WithSelector(MinLength(30)))
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	if payloads[0].Kind != sigscan.KindZIP {
		t.Errorf("Kind = %q, want %q", payloads[0].Kind, sigscan.KindZIP)
	}
}

func TestWithSelectorRunsBeforeCap(t *testing.T) {
	// The jpeg candidate comes first; with a cap of one the selector
	// must still let the zip through.
	data := concat(buildJPEG([]byte{0xAA, 0xBB, 0xCC}), make([]byte, 3), buildZIP(nil))

	payloads := DetectCarvedPayloads(data,
		WithSelector(MatchKinds(sigscan.KindZIP)),
		WithMaxFindings(1))
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	if payloads[0].Kind != sigscan.KindZIP {
		t.Errorf("Kind = %q, want %q", payloads[0].Kind, sigscan.KindZIP)
	}
}

func TestWithDigest(t *testing.T) {
	data := buildPNG()

	payloads := DetectCarvedPayloads(data, WithDigest(ChecksumXXHash))
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	want, err := ChecksumBytes(data, ChecksumXXHash)
	if err != nil {
		t.Fatalf("ChecksumBytes() error = %v", err)
	}
	if payloads[0].Digest != want {
		t.Errorf("Digest = %q, want %q", payloads[0].Digest, want)
	}

	// An unknown algorithm leaves the digest empty rather than failing
	// the scan.
	payloads = DetectCarvedPayloads(data, WithDigest(ChecksumAlgorithm("wat")))
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	if payloads[0].Digest != "" {
		t.Errorf("Digest = %q, want empty for unknown algorithm", payloads[0].Digest)
	}
}

func TestPayloadBytesRoundTrip(t *testing.T) {
	png := buildPNG()
	data := append(make([]byte, 5), png...)

	payloads := DetectCarvedPayloads(data)
	if len(payloads) != 1 {
		t.Fatalf("DetectCarvedPayloads() returned %d payloads, want 1", len(payloads))
	}
	if got := payloads[0].Bytes(data); !bytes.Equal(got, png) {
		t.Errorf("Bytes() = % X, want % X", got, png)
	}
}
