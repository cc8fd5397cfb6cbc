//go:build linux

// Package v4l2 implements a capture device directly on top of V4L2.
package v4l2

import (
	"log/slog"

	"github.com/abihf/camprobe/capture"
	"github.com/blackjack/webcam"
	"github.com/pkg/errors"
)

// V4L2 user class control ids.
var controlIDs = map[capture.Property]webcam.ControlID{
	capture.PropBrightness: 0x00980900,
	capture.PropContrast:   0x00980901,
	capture.PropSaturation: 0x00980902,
	capture.PropGamma:      0x00980910,
}

// maxTimeouts is the number of consecutive frame wait timeouts tolerated
// before Read fails.
const maxTimeouts = 5

// camera is the part of *webcam.Webcam the device uses.
type camera interface {
	SetImageFormat(f webcam.PixelFormat, width, height uint32) (webcam.PixelFormat, uint32, uint32, error)
	SetFramerate(fps float32) error
	GetFramerate() (float32, error)
	SetControl(id webcam.ControlID, value int32) error
	GetControl(id webcam.ControlID) (int32, error)
	StartStreaming() error
	WaitForFrame(timeout uint32) error
	ReadFrame() ([]byte, error)
	Close() error
}

type format struct {
	width, height uint32
	pixel         webcam.PixelFormat
	fps           float32
}

// Device captures raw frames from a V4L2 node. Format changes are applied
// lazily: Set records the request and the next Get or Read commits it.
type Device struct {
	cam  camera
	path string
	log  *slog.Logger

	// Timeout is the frame wait timeout in seconds.
	Timeout uint32

	req       format
	cur       format
	dirty     bool
	streaming bool
	closed    bool

	buf   []byte
	frame capture.RawFrame
}

func Open(path string, log *slog.Logger) (*Device, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can not open device ")
	}
	return newDevice(cam, path, log), nil
}

func newDevice(cam camera, path string, log *slog.Logger) *Device {
	if log == nil {
		log = slog.Default()
	}
	return &Device{
		cam:     cam,
		path:    path,
		log:     log.With("device", path),
		Timeout: 1,
	}
}

func (d *Device) Set(p capture.Property, v float64) {
	switch p {
	case capture.PropFrameWidth:
		d.req.width = uint32(v)
	case capture.PropFrameHeight:
		d.req.height = uint32(v)
	case capture.PropFourCC:
		d.req.pixel = webcam.PixelFormat(uint32(v))
	case capture.PropFPS:
		d.req.fps = float32(v)
	default:
		id, ok := controlIDs[p]
		if !ok {
			return
		}
		if err := d.cam.SetControl(id, int32(v)); err != nil {
			d.log.Warn("Can not set control", "control", p.String(), "value", v, "error", err)
		}
		return
	}
	if d.streaming {
		d.log.Warn("Can not change format while streaming", "property", p.String())
		return
	}
	d.dirty = true
}

func (d *Device) Get(p capture.Property) float64 {
	if d.dirty {
		d.commit()
	}
	switch p {
	case capture.PropFrameWidth:
		return float64(d.cur.width)
	case capture.PropFrameHeight:
		return float64(d.cur.height)
	case capture.PropFourCC:
		return float64(uint32(d.cur.pixel))
	case capture.PropFPS:
		return float64(d.cur.fps)
	}
	id, ok := controlIDs[p]
	if !ok {
		return 0
	}
	v, err := d.cam.GetControl(id)
	if err != nil {
		d.log.Warn("Can not get control", "control", p.String(), "error", err)
		return 0
	}
	return float64(v)
}

// commit applies the pending format. The driver answers with the closest mode
// it supports, which becomes the current format.
func (d *Device) commit() {
	d.dirty = false

	if d.req.pixel != 0 && d.req.width != 0 && d.req.height != 0 {
		pixel, w, h, err := d.cam.SetImageFormat(d.req.pixel, d.req.width, d.req.height)
		if err != nil {
			d.log.Warn("Can not set image format", "error", err)
		} else {
			d.cur.pixel, d.cur.width, d.cur.height = pixel, w, h
		}
	}

	if d.req.fps > 0 {
		if err := d.cam.SetFramerate(d.req.fps); err != nil {
			d.log.Warn("Can not set framerate", "fps", d.req.fps, "error", err)
		}
	}
	fps, err := d.cam.GetFramerate()
	if err != nil {
		d.log.Warn("Can not get framerate", "error", err)
		return
	}
	d.cur.fps = fps
}

func (d *Device) IsOpened() bool {
	return !d.closed
}

// Read waits for the next frame and copies it out of the driver buffer.
func (d *Device) Read() (capture.Frame, error) {
	if d.closed {
		return nil, capture.ErrClosed
	}
	if !d.streaming {
		if d.dirty {
			d.commit()
		}
		if err := d.cam.StartStreaming(); err != nil {
			return nil, errors.Wrap(err, "Can not start streaming")
		}
		d.streaming = true
	}

	timeouts := 0
	for {
		err := d.cam.WaitForFrame(d.Timeout)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			timeouts++
			if timeouts >= maxTimeouts {
				return nil, errors.Wrapf(err, "No frame after %d waits", timeouts)
			}
			d.log.Debug("Frame wait timed out", "timeouts", timeouts)
			continue
		default:
			return nil, errors.Wrap(err, "Frame wait failed")
		}

		frame, err := d.cam.ReadFrame()
		if err != nil {
			return nil, errors.Wrap(err, "Read frame failed")
		}
		if len(frame) == 0 {
			continue
		}

		d.buf = append(d.buf[:0], frame...)
		d.frame = capture.RawFrame{
			W:      int(d.cur.width),
			H:      int(d.cur.height),
			Format: capture.FourCC(d.cur.pixel),
			Data:   d.buf,
		}
		return &d.frame, nil
	}
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.cam.Close()
}
