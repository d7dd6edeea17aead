package carvekit

// ScanOrder selects how the extractor walks pixels.
type ScanOrder string

const (
	// RowMajor walks left to right, top to bottom
	RowMajor ScanOrder = "row-major"

	// ColumnMajor walks top to bottom, left to right
	ColumnMajor ScanOrder = "column-major"
)

// ChannelOrder selects the channel traversal sequence within each pixel.
type ChannelOrder string

const (
	OrderRGBA ChannelOrder = "RGBA"
	OrderARGB ChannelOrder = "ARGB"
	OrderBGRA ChannelOrder = "BGRA"
	OrderABGR ChannelOrder = "ABGR"
)

// Channels returns the traversal sequence. Unknown orders fall back to
// RGBA.
func (o ChannelOrder) Channels() [4]Channel {
	switch o {
	case OrderARGB:
		return [4]Channel{ChannelAlpha, ChannelRed, ChannelGreen, ChannelBlue}
	case OrderBGRA:
		return [4]Channel{ChannelBlue, ChannelGreen, ChannelRed, ChannelAlpha}
	case OrderABGR:
		return [4]Channel{ChannelAlpha, ChannelBlue, ChannelGreen, ChannelRed}
	default:
		return [4]Channel{ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha}
	}
}

// BitOrder selects the bit traversal sequence within each channel.
type BitOrder string

const (
	// LSBToMSB visits bit positions 1 through 8
	LSBToMSB BitOrder = "lsb-to-msb"

	// MSBToLSB visits bit positions 8 through 1
	MSBToLSB BitOrder = "msb-to-lsb"
)

// PackOrder selects where each emitted bit lands inside an output byte.
type PackOrder string

const (
	// PackMSBFirst fills output bytes from bit 7 down to bit 0
	PackMSBFirst PackOrder = "msb-first"

	// PackLSBFirst fills output bytes from bit 0 up to bit 7
	PackLSBFirst PackOrder = "lsb-first"
)

// BitExtractionOptions configures one bit-plane walk. It is a plain value;
// the zero value means the default traversal.
type BitExtractionOptions struct {
	// ScanOrder is the pixel walk order
	ScanOrder ScanOrder

	// ChannelOrder is the channel sequence within each pixel
	ChannelOrder ChannelOrder

	// BitOrder is the bit sequence within each channel
	BitOrder BitOrder

	// PackOrder is the bit packing direction within output bytes
	PackOrder PackOrder
}

// DefaultBitExtractionOptions returns the conventional traversal: pixels
// row-major, channels in RGBA order, bits from least significant up,
// output bytes packed most significant bit first.
func DefaultBitExtractionOptions() BitExtractionOptions {
	return BitExtractionOptions{
		ScanOrder:    RowMajor,
		ChannelOrder: OrderRGBA,
		BitOrder:     LSBToMSB,
		PackOrder:    PackMSBFirst,
	}
}

// withDefaults fills unset fields with the default traversal.
func (o BitExtractionOptions) withDefaults() BitExtractionOptions {
	def := DefaultBitExtractionOptions()
	if o.ScanOrder == "" {
		o.ScanOrder = def.ScanOrder
	}
	if o.ChannelOrder == "" {
		o.ChannelOrder = def.ChannelOrder
	}
	if o.BitOrder == "" {
		o.BitOrder = def.BitOrder
	}
	if o.PackOrder == "" {
		o.PackOrder = def.PackOrder
	}
	return o
}

// ExtractedBitStream is the packed output of a bit-plane walk.
type ExtractedBitStream struct {
	// Bytes is the packed plane data, truncated to the byte budget
	Bytes []byte

	// TotalBits is the bit count of the full unbudgeted selection
	TotalBits int

	// TotalBytes is TotalBits rounded up to whole bytes
	TotalBytes int

	// BitsPerPixel is the number of selected planes
	BitsPerPixel int
}

// ExtractBitPlaneStream walks p's pixels in the configured order, reads
// the selected bit planes from each pixel, and packs the bit sequence
// into a byte buffer of at most maxBytes.
//
// The planes are visited in a canonical order derived from the options
// (channel order outer, bit order inner), regardless of the order they
// were selected in; duplicates collapse. An empty selection, a zero byte
// budget, or an empty pixmap yields a zero-length stream with the counts
// still filled in.
//
// Extraction stops at exactly min(TotalBits, len(Bytes)*8) emitted bits,
// which may fall mid-pixel.
func ExtractBitPlaneStream(p Pixmap, selected []PlaneSpec, opts BitExtractionOptions, maxBytes int) ExtractedBitStream {
	opts = opts.withDefaults()
	ordered := orderPlanes(selected, opts)
	bitsPerPixel := len(ordered)

	totalBits := p.Width * p.Height * bitsPerPixel
	totalBytes := (totalBits + 7) / 8

	budget := maxBytes
	if budget < 0 {
		budget = 0
	}
	outLen := totalBytes
	if budget < outLen {
		outLen = budget
	}

	stream := ExtractedBitStream{
		TotalBits:    totalBits,
		TotalBytes:   totalBytes,
		BitsPerPixel: bitsPerPixel,
	}
	if bitsPerPixel == 0 || totalBits == 0 || outLen == 0 {
		return stream
	}

	out := make([]byte, outLen)
	limit := outLen * 8
	if totalBits < limit {
		limit = totalBits
	}
	packLSB := opts.PackOrder == PackLSBFirst

	emitted := 0
	writePixel := func(base int) {
		for _, plane := range ordered {
			if emitted >= limit {
				return
			}
			if p.Pix[base+plane.ChannelOffset]&plane.Mask != 0 {
				pos := uint(7 - emitted%8)
				if packLSB {
					pos = uint(emitted % 8)
				}
				out[emitted/8] |= 1 << pos
			}
			emitted++
		}
	}

	if opts.ScanOrder == ColumnMajor {
		for x := 0; x < p.Width && emitted < limit; x++ {
			for y := 0; y < p.Height && emitted < limit; y++ {
				writePixel(p.PixOffset(x, y))
			}
		}
	} else {
		for y := 0; y < p.Height && emitted < limit; y++ {
			for x := 0; x < p.Width && emitted < limit; x++ {
				writePixel(p.PixOffset(x, y))
			}
		}
	}

	stream.Bytes = out
	return stream
}

// orderPlanes rebuilds the selection in canonical traversal order: the
// channel sequence from the options on the outside, the bit sequence on
// the inside. Planes selected more than once appear once.
func orderPlanes(selected []PlaneSpec, opts BitExtractionOptions) []PlaneSpec {
	if len(selected) == 0 {
		return nil
	}
	type planeKey struct {
		channel Channel
		bit     int
	}
	want := make(map[planeKey]bool, len(selected))
	for _, plane := range selected {
		want[planeKey{plane.Channel, plane.Bit}] = true
	}

	bits := [8]int{1, 2, 3, 4, 5, 6, 7, 8}
	if opts.BitOrder == MSBToLSB {
		bits = [8]int{8, 7, 6, 5, 4, 3, 2, 1}
	}

	var ordered []PlaneSpec
	for _, channel := range opts.ChannelOrder.Channels() {
		for _, bit := range bits {
			if !want[planeKey{channel, bit}] {
				continue
			}
			if plane, ok := Plane(channel, bit); ok {
				ordered = append(ordered, plane)
			}
		}
	}
	return ordered
}
