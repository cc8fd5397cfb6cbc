package capture

import (
	"fmt"

	"github.com/pkg/errors"
)

// FourCC is a four character code packed little-endian into 32 bits.
type FourCC uint32

// Common pixel formats.
var (
	FormatYUYV = NewFourCC('Y', 'U', 'Y', 'V')
	FormatMJPG = NewFourCC('M', 'J', 'P', 'G')
	FormatGREY = NewFourCC('G', 'R', 'E', 'Y')
)

func NewFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// ParseFourCC packs a four character tag such as "MJPG".
func ParseFourCC(s string) (FourCC, error) {
	if len(s) != 4 {
		return 0, errors.Errorf("fourcc must be 4 characters: %q", s)
	}
	return NewFourCC(s[0], s[1], s[2], s[3]), nil
}

// FourCCName decodes the packed value back into its tag, lowest byte first.
func FourCCName(v uint32) string {
	return string([]byte{
		byte(v & 0xFF),
		byte((v >> 8) & 0xFF),
		byte((v >> 16) & 0xFF),
		byte((v >> 24) & 0xFF),
	})
}

func (f FourCC) String() string {
	return FourCCName(uint32(f))
}

// Hex formats the raw value the way capture logs print it.
func (f FourCC) Hex() string {
	return fmt.Sprintf("%#02x", uint32(f))
}
