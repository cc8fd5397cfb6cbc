//go:build linux

package v4l2

import (
	"sort"

	"github.com/abihf/camprobe/capture"
	"github.com/blackjack/webcam"
	"github.com/pkg/errors"
)

// Format is a pixel format supported by a device with its frame sizes.
type Format struct {
	Code  capture.FourCC
	Name  string
	Sizes []string
}

// Control is a device control and its range.
type Control struct {
	ID   uint32
	Name string
	Min  int32
	Max  int32
}

// Capabilities lists what a device offers.
type Capabilities struct {
	Formats  []Format
	Controls []Control
}

type enumerator interface {
	GetSupportedFormats() map[webcam.PixelFormat]string
	GetSupportedFrameSizes(webcam.PixelFormat) []webcam.FrameSize
	GetControls() map[webcam.ControlID]webcam.Control
	Close() error
}

// Query opens the device at path and lists its formats and controls.
func Query(path string) (*Capabilities, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can not open device ")
	}
	defer cam.Close()
	return query(cam), nil
}

func query(cam enumerator) *Capabilities {
	caps := &Capabilities{}
	for code, name := range cam.GetSupportedFormats() {
		f := Format{Code: capture.FourCC(code), Name: name}
		for _, size := range cam.GetSupportedFrameSizes(code) {
			f.Sizes = append(f.Sizes, size.GetString())
		}
		caps.Formats = append(caps.Formats, f)
	}
	sort.Slice(caps.Formats, func(i, j int) bool {
		return caps.Formats[i].Code.String() < caps.Formats[j].Code.String()
	})

	for id, c := range cam.GetControls() {
		caps.Controls = append(caps.Controls, Control{ID: uint32(id), Name: c.Name, Min: c.Min, Max: c.Max})
	}
	sort.Slice(caps.Controls, func(i, j int) bool {
		return caps.Controls[i].ID < caps.Controls[j].ID
	})
	return caps
}
