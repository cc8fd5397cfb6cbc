package capture

import (
	"fmt"
	"log/slog"
)

// Control is a device control value such as brightness.
type Control struct {
	Property Property
	Value    float64
}

// Request is the capture mode asked of a device.
type Request struct {
	Width    int
	Height   int
	FPS      float64
	FourCC   FourCC
	Controls []Control
}

// Mode is the capture mode a device reports after negotiation.
type Mode struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	FPS      float64   `json:"fps"`
	FourCC   FourCC    `json:"-"`
	Format   string    `json:"fourcc"`
	Controls []Control `json:"-"`
}

// Negotiate requests a mode from the device and reads back what the backend
// actually applied. Both sides are logged.
func Negotiate(dev Device, req Request, log *slog.Logger) Mode {
	if log == nil {
		log = slog.Default()
	}

	dev.Set(PropFrameWidth, float64(req.Width))
	dev.Set(PropFrameHeight, float64(req.Height))
	dev.Set(PropFPS, req.FPS)
	dev.Set(PropFourCC, float64(req.FourCC))
	for _, c := range req.Controls {
		dev.Set(c.Property, c.Value)
	}
	log.Info("Set capture",
		"width", req.Width,
		"height", req.Height,
		"fps", req.FPS,
		"fourcc", req.FourCC.Hex(),
		"format", req.FourCC.String(),
	)
	for _, c := range req.Controls {
		log.Info("Set capture control", "control", c.Property.String(), "value", c.Value)
	}

	cc := fourccValue(dev.Get(PropFourCC))
	mode := Mode{
		Width:  int(dev.Get(PropFrameWidth)),
		Height: int(dev.Get(PropFrameHeight)),
		FPS:    dev.Get(PropFPS),
		FourCC: cc,
		Format: cc.String(),
	}
	for _, c := range req.Controls {
		mode.Controls = append(mode.Controls, Control{Property: c.Property, Value: dev.Get(c.Property)})
	}
	log.Info("Get capture",
		"width", mode.Width,
		"height", mode.Height,
		"fps", mode.FPS,
		"fourcc", cc.Hex(),
		"format", mode.Format,
	)
	for _, c := range mode.Controls {
		log.Info("Get capture control", "control", c.Property.String(), "value", c.Value)
	}

	if mode.Width != req.Width || mode.Height != req.Height || mode.FourCC != req.FourCC {
		log.Warn("Capture mode differs from request",
			"requested", formatMode(req.Width, req.Height, req.FourCC),
			"negotiated", formatMode(mode.Width, mode.Height, mode.FourCC),
		)
	}
	return mode
}

// fourccValue converts a reported property to a tag. Negative reports wrap
// the same way on every platform.
func fourccValue(v float64) FourCC {
	return FourCC(uint32(int64(v)))
}

func formatMode(w, h int, cc FourCC) string {
	return fmt.Sprintf("%dx%d %s", w, h, cc)
}
