package carvekit

import (
	"image"
	"image/draw"
)

// Pixmap is a width by height pixel buffer with four bytes per pixel in
// R, G, B, A order and rows packed top to bottom. It is the input shape
// the bit-plane extractor walks.
type Pixmap struct {
	// Width is the pixel count per row
	Width int

	// Height is the row count
	Height int

	// Pix holds Width*Height*4 bytes of non-premultiplied RGBA
	Pix []byte
}

// NewPixmap allocates a zeroed pixel buffer. Negative dimensions are
// treated as zero.
func NewPixmap(width, height int) Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Pixmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p Pixmap) PixOffset(x, y int) int {
	return (y*p.Width + x) * 4
}

// SetRGBA sets the pixel at (x, y). Coordinates outside the buffer are
// ignored.
func (p Pixmap) SetRGBA(x, y int, r, g, b, a byte) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = r
	p.Pix[i+1] = g
	p.Pix[i+2] = b
	p.Pix[i+3] = a
}

// RGBA returns the pixel at (x, y). Coordinates outside the buffer read
// as zero.
func (p Pixmap) RGBA(x, y int) (r, g, b, a byte) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0, 0, 0, 0
	}
	i := p.PixOffset(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// PixmapFromImage copies img into a Pixmap, converting to 8-bit
// non-premultiplied RGBA.
func PixmapFromImage(img image.Image) Pixmap {
	bounds := img.Bounds()
	p := NewPixmap(bounds.Dx(), bounds.Dy())
	if p.Width == 0 || p.Height == 0 {
		return p
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	copy(p.Pix, nrgba.Pix)
	return p
}
