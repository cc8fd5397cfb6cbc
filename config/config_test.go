package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/abihf/camprobe/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeDefaults(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	conf, err := Parse("camprobe", Probe, nil, io.Discard)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("0", conf.Device)
	assert.False(conf.NoIndex)
	assert.Equal(640, conf.Width)
	assert.Equal(480, conf.Height)
	assert.Equal(30.0, conf.FPS)
	assert.Equal("YUYV", conf.FourCC)
	assert.Equal(100, conf.Interval)
	assert.Equal(BackendOpenCV, conf.Backend)
	assert.Equal("/run/user/1000/camprobe.sock", conf.Socket)
}

func TestParseProbeFlags(t *testing.T) {
	conf, err := Parse("camprobe", Probe, []string{
		"--device", "/tmp/test.avi", "--no-index",
		"--width", "1280", "--height", "720", "--fps", "59.94",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.avi", conf.Device)
	assert.True(t, conf.NoIndex)
	assert.Equal(t, 1280, conf.Width)
	assert.Equal(t, 720, conf.Height)
	assert.Equal(t, 59.94, conf.FPS)

	conf, err = Parse("camprobe", Probe, []string{"-d", "2"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "2", conf.Device)
}

func TestParseViewFlags(t *testing.T) {
	conf, err := Parse("camview", View, []string{"-w", "320", "-h", "240", "-f", "15"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, conf.NoIndex, "index mode is the default")
	assert.Equal(t, 320, conf.Width)
	assert.Equal(t, 240, conf.Height)
	assert.Equal(t, 15.0, conf.FPS)

	conf, err = Parse("camview", View, []string{"-d", "clip.mp4", "-i=false"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, conf.NoIndex)
	assert.Equal(t, "clip.mp4", conf.Device)

	conf, err = Parse("camview", View, []string{"--index"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, conf.NoIndex, "--index selects index mode")
}

func TestParseVariantFlagsAreDistinct(t *testing.T) {
	_, err := Parse("camview", View, []string{"--no-index"}, io.Discard)
	assert.Error(t, err, "camview has no --no-index")

	_, err = Parse("camprobe", Probe, []string{"-w", "320"}, io.Discard)
	assert.Error(t, err, "camprobe has no -w")
}

func TestParseHelp(t *testing.T) {
	_, err := Parse("camprobe", Probe, []string{"-help"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--width", "0"},
		{"--fps", "-1"},
		{"--fourcc", "MJPEG"},
		{"--backend", "directshow"},
		{"--api", "quicktime"},
		{"--interval", "0"},
		{"--log-level", "trace"},
		{"extra"},
	} {
		_, err := Parse("camprobe", Probe, args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestParseEmptySocketDisablesStatus(t *testing.T) {
	conf, err := Parse("camprobe", Probe, []string{"--status-socket", ""}, io.Discard)
	require.NoError(t, err)
	assert.Empty(t, conf.Socket)
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camprobe.json")
	data := `{"device": "/dev/video2", "no_index": true, "width": 1920, "height": 1080, "fourcc": "MJPG", "brightness": 20}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	conf, err := Parse("camprobe", Probe, []string{"--config", path, "--height", "720", "--gamma", "400"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "/dev/video2", conf.Device)
	assert.True(t, conf.NoIndex)
	assert.Equal(t, "MJPG", conf.FourCC)
	assert.Equal(t, 1920, conf.Width, "file value")
	assert.Equal(t, 720, conf.Height, "flag value")
	assert.Equal(t, 30.0, conf.FPS, "default value")

	require.NotNil(t, conf.Brightness)
	assert.Equal(t, 20.0, *conf.Brightness)
	require.NotNil(t, conf.Gamma)
	assert.Equal(t, 400.0, *conf.Gamma)
	assert.Nil(t, conf.Contrast)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	conf := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, Default(), *conf)
}

func TestRequest(t *testing.T) {
	conf := Default()
	brightness, saturation := 20.0, 68.0
	conf.Brightness = &brightness
	conf.Saturation = &saturation
	conf.FourCC = "MJPG"

	req, err := conf.Request()
	require.NoError(t, err)
	assert.Equal(t, capture.Request{
		Width:  640,
		Height: 480,
		FPS:    30,
		FourCC: capture.FormatMJPG,
		Controls: []capture.Control{
			{Property: capture.PropBrightness, Value: 20},
			{Property: capture.PropSaturation, Value: 68},
		},
	}, req)
}

func TestQuitRune(t *testing.T) {
	conf := Default()
	assert.Equal(t, 'q', conf.QuitRune())
	conf.QuitKey = "x"
	assert.Equal(t, 'x', conf.QuitRune())
}
