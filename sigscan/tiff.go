package sigscan

var (
	tiffLittleEndian = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBigEndian    = []byte{0x4D, 0x4D, 0x00, 0x2A}
)

type tiffDetector struct{}

func (tiffDetector) Format() Format {
	return Format{
		Kind:      KindTIFF,
		Label:     "TIFF image",
		Extension: ".tiff",
		MIME:      "image/tiff",
		Signature: "49 49 2A 00 or 4D 4D 00 2A",
		Strategy:  "signature only",
	}
}

func (tiffDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, tiffLittleEndian) || matchAt(data, offset, tiffBigEndian)
}

// FindEnd never succeeds. TIFF directories chain by absolute offsets in
// either byte order and strip data can sit past the last IFD, so there is
// no reliable end marker to walk to. Callers carve to the next candidate
// instead.
func (tiffDetector) FindEnd(data []byte, start int) (int, bool) {
	return 0, false
}
