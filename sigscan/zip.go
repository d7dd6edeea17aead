package sigscan

import (
	"bytes"
	"encoding/binary"
)

var (
	zipSignature = []byte("PK\x03\x04")
	zipEOCD      = []byte("PK\x05\x06")
)

// zipEOCDSize is the fixed portion of the end-of-central-directory record:
// signature, disk numbers, entry counts, directory size and offset, and the
// 2-byte comment length.
const zipEOCDSize = 22

type zipDetector struct{}

func (zipDetector) Format() Format {
	return Format{
		Kind:      KindZIP,
		Label:     "ZIP archive",
		Extension: ".zip",
		MIME:      "application/zip",
		Signature: "50 4B 03 04",
		Strategy:  "located the end-of-central-directory record",
	}
}

func (zipDetector) Matches(data []byte, offset int) bool {
	return matchAt(data, offset, zipSignature)
}

// FindEnd scans forward for the end-of-central-directory signature and adds
// the fixed record size plus the archive comment length it declares.
func (zipDetector) FindEnd(data []byte, start int) (int, bool) {
	idx := bytes.Index(data[start:], zipEOCD)
	if idx < 0 {
		return 0, false
	}
	eocd := start + idx
	if eocd+zipEOCDSize > len(data) {
		return 0, false
	}
	comment := int(binary.LittleEndian.Uint16(data[eocd+20:]))
	end := eocd + zipEOCDSize + comment
	if end > len(data) {
		return 0, false
	}
	return end, true
}
