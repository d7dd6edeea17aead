package sigscan

import "encoding/binary"

var (
	riffSignature = []byte("RIFF")
	webpFourCC    = []byte("WEBP")
)

type webpDetector struct{}

func (webpDetector) Format() Format {
	return Format{
		Kind:      KindWebP,
		Label:     "WebP image",
		Extension: ".webp",
		MIME:      "image/webp",
		Signature: "RIFF .... WEBP",
		Strategy:  "read the RIFF payload length",
	}
}

// Matches requires both the RIFF tag at offset and the WEBP form type at
// offset+8, so plain RIFF containers (WAV, AVI) never match.
func (webpDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, riffSignature) && matchAt(data, offset+8, webpFourCC)
}

// FindEnd reads the 4-byte little-endian RIFF payload length at offset+4;
// the container spans the 8-byte RIFF header plus that payload.
func (webpDetector) FindEnd(data []byte, start int) (int, bool) {
	if start+12 > len(data) {
		return 0, false
	}
	payload := int(binary.LittleEndian.Uint32(data[start+4:]))
	if payload <= 0 {
		return 0, false
	}
	end := start + 8 + payload
	if end > len(data) {
		return 0, false
	}
	return end, true
}
