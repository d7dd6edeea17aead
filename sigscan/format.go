package sigscan

import "strings"

// Kind identifies a supported container format.
type Kind string

const (
	KindPNG  Kind = "png"
	KindJPEG Kind = "jpeg"
	KindGIF  Kind = "gif"
	KindWebP Kind = "webp"
	KindBMP  Kind = "bmp"
	KindTIFF Kind = "tiff"
	KindPDF  Kind = "pdf"
	KindZIP  Kind = "zip"
)

// Format describes a detectable container format. All fields are static
// metadata; the values are shared, read-only catalog data.
type Format struct {
	// Kind is the format identifier.
	Kind Kind

	// Label is a short human-readable name, e.g. "PNG image".
	Label string

	// Extension is the conventional file extension including the dot.
	Extension string

	// MIME is the media type reported for carved payloads.
	MIME string

	// Signature describes the magic bytes the matcher looks for.
	Signature string

	// Strategy describes how the end of the container is located.
	Strategy string

	// Heuristic marks formats whose end locator can be fooled by
	// content, such as a byte pattern that mimics the end marker.
	// A successful FindEnd is still not structural proof.
	Heuristic bool
}

// kindsByExtension maps lowercase file extensions (with dot) to kinds.
var kindsByExtension = map[string]Kind{
	".png":  KindPNG,
	".jpg":  KindJPEG,
	".jpeg": KindJPEG,
	".jpe":  KindJPEG,
	".gif":  KindGIF,
	".webp": KindWebP,
	".bmp":  KindBMP,
	".dib":  KindBMP,
	".tif":  KindTIFF,
	".tiff": KindTIFF,
	".pdf":  KindPDF,
	".zip":  KindZIP,
}

// kindsByMIME maps media types to kinds.
var kindsByMIME = map[string]Kind{
	"image/png":       KindPNG,
	"image/jpeg":      KindJPEG,
	"image/jpg":       KindJPEG,
	"image/gif":       KindGIF,
	"image/webp":      KindWebP,
	"image/bmp":       KindBMP,
	"image/x-ms-bmp":  KindBMP,
	"image/tiff":      KindTIFF,
	"application/pdf": KindPDF,
	"application/zip": KindZIP,
}

// KindForExtension returns the format kind for a file extension. The
// extension is matched case-insensitively and may be given with or without
// the leading dot.
func KindForExtension(ext string) (Kind, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	kind, ok := kindsByExtension[ext]
	return kind, ok
}

// KindForMIME returns the format kind for a media type. Parameters such as
// charset suffixes are ignored.
func KindForMIME(mime string) (Kind, bool) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.Index(mime, ";"); idx > 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	kind, ok := kindsByMIME[mime]
	return kind, ok
}
