package sigscan

import "encoding/binary"

var bmpSignature = []byte("BM")

type bmpDetector struct{}

func (bmpDetector) Format() Format {
	return Format{
		Kind:      KindBMP,
		Label:     "BMP image",
		Extension: ".bmp",
		MIME:      "image/bmp",
		Signature: "42 4D",
		Strategy:  "read the file size from the bitmap header",
	}
}

func (bmpDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, bmpSignature)
}

// FindEnd reads the declared file size at offset+2. The 14-byte file header
// plus the smallest info header is 26 bytes, so anything shorter is junk.
func (bmpDetector) FindEnd(data []byte, start int) (int, bool) {
	if start+6 > len(data) {
		return 0, false
	}
	size := int(binary.LittleEndian.Uint32(data[start+2:]))
	if size < 26 {
		return 0, false
	}
	end := start + size
	if end > len(data) {
		return 0, false
	}
	return end, true
}
