package sigscan

var (
	gif87Signature = []byte("GIF87a")
	gif89Signature = []byte("GIF89a")
)

type gifDetector struct{}

func (gifDetector) Format() Format {
	return Format{
		Kind:      KindGIF,
		Label:     "GIF image",
		Extension: ".gif",
		MIME:      "image/gif",
		Signature: "GIF87a / GIF89a",
		Strategy:  "walked color tables, image and extension blocks to the trailer",
	}
}

func (gifDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, gif87Signature) || matchAt(data, offset, gif89Signature)
}

// FindEnd walks the block stream after the 6-byte header and 7-byte logical
// screen descriptor: 0x2C image descriptors (with optional local color
// table and LZW sub-blocks), 0x21 extensions, and the 0x3B trailer that
// ends the container. A global color table, when flagged in the descriptor's
// packed byte, holds 3 * 2^((packed&7)+1) bytes.
func (gifDetector) FindEnd(data []byte, start int) (int, bool) {
	pos := start + 13
	if pos > len(data) {
		return 0, false
	}
	packed := data[start+10]
	if packed&0x80 != 0 {
		pos += colorTableSize(packed)
	}
	for pos < len(data) {
		sentinel := data[pos]
		pos++
		switch sentinel {
		case 0x3B: // trailer
			return pos, true

		case 0x2C: // image descriptor
			if pos+9 > len(data) {
				return 0, false
			}
			imgPacked := data[pos+8]
			pos += 9
			if imgPacked&0x80 != 0 {
				pos += colorTableSize(imgPacked)
			}
			// LZW minimum code size byte precedes the pixel sub-blocks.
			if pos >= len(data) {
				return 0, false
			}
			pos++
			var ok bool
			if pos, ok = skipSubBlocks(data, pos); !ok {
				return 0, false
			}

		case 0x21: // extension
			if pos >= len(data) {
				return 0, false
			}
			label := data[pos]
			pos++
			if label == 0xF9 {
				// Graphic control: one fixed-size sub-block, then a
				// terminator that must be exactly 0x00.
				if pos >= len(data) {
					return 0, false
				}
				pos += 1 + int(data[pos])
				if pos >= len(data) || data[pos] != 0x00 {
					return 0, false
				}
				pos++
			} else {
				var ok bool
				if pos, ok = skipSubBlocks(data, pos); !ok {
					return 0, false
				}
			}

		default:
			return 0, false
		}
	}
	return 0, false
}

// colorTableSize returns the byte size of a color table described by a GIF
// packed byte: 3 * 2^((packed&7)+1).
func colorTableSize(packed byte) int {
	return 3 * (1 << ((uint(packed) & 7) + 1))
}

// skipSubBlocks advances past a chain of length-prefixed sub-blocks and
// stops after the zero-length terminator block.
func skipSubBlocks(data []byte, pos int) (int, bool) {
	for pos < len(data) {
		size := int(data[pos])
		pos++
		if size == 0 {
			return pos, true
		}
		pos += size
	}
	return 0, false
}
