package carvekit

import (
	"fmt"
	"strconv"
	"strings"
)

// Channel identifies one color channel of an RGBA pixel.
type Channel string

const (
	// ChannelRed is the R channel at pixel byte offset 0
	ChannelRed Channel = "R"

	// ChannelGreen is the G channel at pixel byte offset 1
	ChannelGreen Channel = "G"

	// ChannelBlue is the B channel at pixel byte offset 2
	ChannelBlue Channel = "B"

	// ChannelAlpha is the A channel at pixel byte offset 3
	ChannelAlpha Channel = "A"
)

// Offset returns the channel's byte offset within an RGBA pixel, or -1
// for an unknown channel.
func (c Channel) Offset() int {
	switch c {
	case ChannelRed:
		return 0
	case ChannelGreen:
		return 1
	case ChannelBlue:
		return 2
	case ChannelAlpha:
		return 3
	default:
		return -1
	}
}

// PlaneSpec identifies one bit plane of one channel. The catalog holds
// exactly 32 specs, 8 bits for each of the 4 channels; they are shared,
// read-only data.
type PlaneSpec struct {
	// Channel is the color channel the plane reads
	Channel Channel

	// ChannelOffset is the channel's byte offset within an RGBA pixel
	ChannelOffset int

	// Bit is the 1-based bit position, 1 meaning least significant
	Bit int

	// Mask selects the plane's bit within the channel byte
	Mask byte

	// Label is a display name, e.g. "R bit 1"
	Label string
}

// planeCatalog holds the 32 bit planes in channel-major, ascending-bit
// order: R1..R8, G1..G8, B1..B8, A1..A8.
var planeCatalog = buildPlaneCatalog()

func buildPlaneCatalog() []PlaneSpec {
	channels := []Channel{ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha}
	planes := make([]PlaneSpec, 0, len(channels)*8)
	for _, ch := range channels {
		for bit := 1; bit <= 8; bit++ {
			planes = append(planes, PlaneSpec{
				Channel:       ch,
				ChannelOffset: ch.Offset(),
				Bit:           bit,
				Mask:          1 << uint(bit-1),
				Label:         fmt.Sprintf("%s bit %d", ch, bit),
			})
		}
	}
	return planes
}

// Planes returns the full plane catalog. The slice is shared, read-only
// catalog data; callers must not modify it.
func Planes() []PlaneSpec {
	return planeCatalog
}

// Plane returns the catalog spec for one channel bit. Bit positions run
// 1 through 8, 1 meaning least significant.
func Plane(channel Channel, bit int) (PlaneSpec, bool) {
	offset := channel.Offset()
	if offset < 0 || bit < 1 || bit > 8 {
		return PlaneSpec{}, false
	}
	return planeCatalog[offset*8+bit-1], true
}

// LowBitPlanes returns the n lowest bit planes of each given channel, the
// selection most embedded payloads occupy. Channels default to R, G, B
// when none are given.
func LowBitPlanes(n int, channels ...Channel) []PlaneSpec {
	if len(channels) == 0 {
		channels = []Channel{ChannelRed, ChannelGreen, ChannelBlue}
	}
	if n > 8 {
		n = 8
	}
	var planes []PlaneSpec
	for _, ch := range channels {
		for bit := 1; bit <= n; bit++ {
			if plane, ok := Plane(ch, bit); ok {
				planes = append(planes, plane)
			}
		}
	}
	return planes
}

// ParsePlanes parses a comma-separated plane list such as "R1,G1,B1".
// Each element is a channel letter followed by a 1-based bit position.
func ParsePlanes(s string) ([]PlaneSpec, error) {
	var planes []PlaneSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) < 2 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlane, part)
		}
		channel := Channel(strings.ToUpper(part[:1]))
		bit, err := strconv.Atoi(part[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlane, part)
		}
		plane, ok := Plane(channel, bit)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlane, part)
		}
		planes = append(planes, plane)
	}
	return planes, nil
}
