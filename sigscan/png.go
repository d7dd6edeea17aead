package sigscan

import "encoding/binary"

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

type pngDetector struct{}

func (pngDetector) Format() Format {
	return Format{
		Kind:      KindPNG,
		Label:     "PNG image",
		Extension: ".png",
		MIME:      "image/png",
		Signature: "89 50 4E 47 0D 0A 1A 0A",
		Strategy:  "walked length-prefixed chunks through IEND",
	}
}

func (pngDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, pngSignature)
}

// FindEnd walks the chunk stream after the 8-byte signature. Each chunk is
// length(4, big-endian) + type(4) + data(length) + crc(4); the container
// ends immediately after the IEND chunk's CRC.
func (pngDetector) FindEnd(data []byte, start int) (int, bool) {
	pos := start + len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		chunkEnd := pos + 8 + length + 4
		if chunkEnd > len(data) {
			return 0, false
		}
		if string(data[pos+4:pos+8]) == "IEND" {
			return chunkEnd, true
		}
		pos = chunkEnd
	}
	return 0, false
}
