package capture

import (
	"fmt"

	"github.com/pkg/errors"
)

// Property identifies a capture setting that can be requested and read back.
type Property int

const (
	PropFrameWidth Property = iota
	PropFrameHeight
	PropFPS
	PropFourCC
	PropBrightness
	PropContrast
	PropSaturation
	PropGamma
)

var propertyNames = map[Property]string{
	PropFrameWidth:  "width",
	PropFrameHeight: "height",
	PropFPS:         "fps",
	PropFourCC:      "fourcc",
	PropBrightness:  "brightness",
	PropContrast:    "contrast",
	PropSaturation:  "saturation",
	PropGamma:       "gamma",
}

func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("property(%d)", int(p))
}

// Frame is a single captured frame. It is only valid until the next Read on
// the device that produced it.
type Frame interface {
	Empty() bool
	Width() int
	Height() int
	Bytes() []byte
}

// Device is an opened capture source.
//
// Set is a request: backends may substitute the nearest supported value
// without reporting it, so callers must Get the property to learn what was
// applied.
type Device interface {
	Set(p Property, v float64)
	Get(p Property) float64
	IsOpened() bool
	// Read blocks until the next frame. An empty frame means the source has
	// no more frames.
	Read() (Frame, error)
	Close() error
}

// RawFrame is a frame backed by a plain byte buffer.
type RawFrame struct {
	W, H   int
	Format FourCC
	Data   []byte
}

func (f *RawFrame) Empty() bool   { return f == nil || len(f.Data) == 0 }
func (f *RawFrame) Width() int    { return f.W }
func (f *RawFrame) Height() int   { return f.H }
func (f *RawFrame) Bytes() []byte { return f.Data }

// ErrClosed is returned when reading from a closed device.
var ErrClosed = errors.New("capture device closed")
