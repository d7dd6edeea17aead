package sigscan

var jpegSignature = []byte{0xFF, 0xD8, 0xFF}

type jpegDetector struct{}

func (jpegDetector) Format() Format {
	return Format{
		Kind:      KindJPEG,
		Label:     "JPEG image",
		Extension: ".jpg",
		MIME:      "image/jpeg",
		Signature: "FF D8 FF",
		Strategy:  "walked marker segments through EOI",
	}
}

func (jpegDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, jpegSignature)
}

// FindEnd walks the marker stream after the SOI pair. Markers are 0xFF
// followed by a code byte; consecutive 0xFF bytes are padding. Code 0x00 is
// a stuffed 0xFF inside entropy-coded data, not a marker. SOI, TEM and the
// restart markers D0-D7 are standalone; every other marker carries a
// big-endian 2-byte length that includes the length field itself (minimum
// 2). The container ends at the byte after the D9 (EOI) code.
func (jpegDetector) FindEnd(data []byte, start int) (int, bool) {
	pos := start + 2
	for pos < len(data) {
		if data[pos] != 0xFF {
			pos++
			continue
		}
		markerPos := pos + 1
		if markerPos >= len(data) {
			return 0, false
		}
		marker := data[markerPos]
		switch {
		case marker == 0xFF:
			// Padding byte; the next 0xFF may still prefix a marker.
			pos++
		case marker == 0x00:
			pos += 2
		case marker == 0xD9:
			return markerPos + 1, true
		case marker == 0xD8 || marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			pos += 2
		default:
			if markerPos+2 >= len(data) {
				return 0, false
			}
			segLen := int(data[markerPos+1])<<8 | int(data[markerPos+2])
			if segLen < 2 {
				return 0, false
			}
			next := markerPos + 1 + segLen
			if next > len(data) {
				return 0, false
			}
			pos = next
		}
	}
	return 0, false
}
