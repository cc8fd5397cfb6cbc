package capture

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiateReadsBack(t *testing.T) {
	dev := newFakeDevice()
	// the backend snaps to the closest mode it supports
	dev.applied = func(p Property, v float64) float64 {
		switch p {
		case PropFrameWidth:
			return 1280
		case PropFrameHeight:
			return 720
		case PropFPS:
			return 25
		case PropFourCC:
			return float64(FormatMJPG)
		}
		return v
	}
	log, buf := newTestLogger(slog.LevelInfo)

	mode := Negotiate(dev, Request{
		Width:    640,
		Height:   480,
		FPS:      30,
		FourCC:   FormatYUYV,
		Controls: []Control{{Property: PropBrightness, Value: 20}},
	}, log)

	assert.Equal(t, 1280, mode.Width)
	assert.Equal(t, 720, mode.Height)
	assert.Equal(t, 25.0, mode.FPS)
	assert.Equal(t, FormatMJPG, mode.FourCC)
	assert.Equal(t, "MJPG", mode.Format)
	require.Len(t, mode.Controls, 1)
	assert.Equal(t, 20.0, mode.Controls[0].Value)

	assert.Equal(t, []Property{PropFrameWidth, PropFrameHeight, PropFPS, PropFourCC, PropBrightness}, dev.sets)

	out := buf.String()
	assert.Contains(t, out, `msg="Set capture" width=640 height=480 fps=30 fourcc=0x56595559 format=YUYV`)
	assert.Contains(t, out, `msg="Get capture" width=1280 height=720 fps=25 fourcc=0x47504a4d format=MJPG`)
	assert.Contains(t, out, `msg="Capture mode differs from request"`)
}

func TestNegotiateExactMatch(t *testing.T) {
	dev := newFakeDevice()
	log, buf := newTestLogger(slog.LevelInfo)

	mode := Negotiate(dev, Request{Width: 640, Height: 480, FPS: 30, FourCC: FormatYUYV}, log)
	assert.Equal(t, Mode{Width: 640, Height: 480, FPS: 30, FourCC: FormatYUYV, Format: "YUYV"}, mode)
	assert.NotContains(t, buf.String(), "differs")
}

func TestNegotiateNegativeFourCC(t *testing.T) {
	dev := newFakeDevice()
	// some backends report the tag as a signed 32 bit value
	dev.applied = func(p Property, v float64) float64 {
		if p == PropFourCC {
			return float64(int32(uint32(NewFourCC('Y', 'U', 'Y', 0x80))))
		}
		return v
	}
	log, _ := newTestLogger(slog.LevelInfo)

	mode := Negotiate(dev, Request{Width: 640, Height: 480, FPS: 30, FourCC: FormatYUYV}, log)
	assert.Less(t, dev.props[PropFourCC], 0.0)
	assert.Equal(t, NewFourCC('Y', 'U', 'Y', 0x80), mode.FourCC)
}

func TestFourCCValueWraps(t *testing.T) {
	assert.Equal(t, FourCC(0xffffffff), fourccValue(-1))
	assert.Equal(t, FormatYUYV, fourccValue(float64(FormatYUYV)))
	assert.Equal(t, FourCC(0), fourccValue(0))
}

func TestPropertyString(t *testing.T) {
	assert.Equal(t, "gamma", PropGamma.String())
	assert.Equal(t, "property(99)", Property(99).String())
}
