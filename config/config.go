package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/abihf/camprobe/capture"
	"github.com/abihf/camprobe/protocol"
	"github.com/pkg/errors"
)

// Capture backends.
const (
	BackendOpenCV = "opencv"
	BackendV4L2   = "v4l2"
)

type Config struct {
	Device  string  `json:"device"`
	NoIndex bool    `json:"no_index"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	FPS     float64 `json:"fps"`
	FourCC  string  `json:"fourcc"`

	Backend string `json:"backend"`
	// API is the OpenCV capture API preference.
	API string `json:"api"`

	// Unset controls are left at the device default.
	Brightness *float64 `json:"brightness,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Gamma      *float64 `json:"gamma,omitempty"`

	Interval int    `json:"interval"`
	Pace     bool   `json:"pace"`
	QuitKey  string `json:"quit_key"`
	// CPU pins the capture thread to a core. Negative disables pinning.
	CPU int `json:"cpu"`

	// Socket is the status socket path. Empty disables the status server.
	Socket    string `json:"socket"`
	PidFile   string `json:"pid_file"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	Journal   bool   `json:"journal"`
}

func Default() Config {
	return Config{
		Device:    "0",
		Width:     640,
		Height:    480,
		FPS:       30,
		FourCC:    "YUYV",
		Backend:   BackendOpenCV,
		API:       "any",
		Interval:  capture.DefaultInterval,
		QuitKey:   string(capture.DefaultQuitKey),
		CPU:       -1,
		Socket:    protocol.GetSockAddress(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path over the defaults. A file that cannot be read is logged
// and the defaults are kept.
func Load(path string) *Config {
	conf := Default()
	if err := loadFromFile(path, &conf); err != nil {
		slog.Warn("Failed to load config file", "path", path, "error", err)
		conf = Default()
	}
	return &conf
}

func loadFromFile(path string, conf *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(conf)
}

var validAPIs = map[string]bool{
	"any": true, "v4l2": true, "gstreamer": true, "ffmpeg": true,
	"dshow": true, "msmf": true, "avfoundation": true,
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid capture size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return errors.Errorf("invalid fps %v", c.FPS)
	}
	if _, err := capture.ParseFourCC(c.FourCC); err != nil {
		return err
	}
	if c.Backend != BackendOpenCV && c.Backend != BackendV4L2 {
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if !validAPIs[c.API] {
		return errors.Errorf("unknown capture api %q", c.API)
	}
	if c.Interval <= 0 {
		return errors.Errorf("invalid report interval %d", c.Interval)
	}
	if len([]rune(c.QuitKey)) != 1 {
		return errors.Errorf("quit key must be a single character: %q", c.QuitKey)
	}
	if !validLevels[c.LogLevel] {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Request builds the capture request described by the config.
func (c *Config) Request() (capture.Request, error) {
	cc, err := capture.ParseFourCC(c.FourCC)
	if err != nil {
		return capture.Request{}, err
	}
	req := capture.Request{
		Width:  c.Width,
		Height: c.Height,
		FPS:    c.FPS,
		FourCC: cc,
	}
	for _, ctl := range []struct {
		prop  capture.Property
		value *float64
	}{
		{capture.PropBrightness, c.Brightness},
		{capture.PropContrast, c.Contrast},
		{capture.PropSaturation, c.Saturation},
		{capture.PropGamma, c.Gamma},
	} {
		if ctl.value != nil {
			req.Controls = append(req.Controls, capture.Control{Property: ctl.prop, Value: *ctl.value})
		}
	}
	return req, nil
}

// QuitRune returns the display quit key.
func (c *Config) QuitRune() rune {
	for _, r := range c.QuitKey {
		return r
	}
	return capture.DefaultQuitKey
}
