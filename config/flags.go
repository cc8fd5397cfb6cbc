package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Variant selects the flag layout of a command.
type Variant int

const (
	// Probe is the timing probe: -d/--device, --no-index, --width, --height, --fps.
	Probe Variant = iota
	// View is the display viewer: -d/--device, -i/--index, -w, -h, -f.
	View
)

// Parse builds the config from defaults, the optional --config file and the
// flags given in args, in that order of precedence.
func Parse(name string, v Variant, args []string, output io.Writer) (*Config, error) {
	conf := Default()
	var path string
	fs := newFlagSet(name, v, &conf, &path)
	if output != nil {
		fs.SetOutput(output)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := errors.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(fs.Output(), err)
		return nil, err
	}

	if path != "" {
		merged := Load(path)
		var ignored string
		over := newFlagSet(name, v, merged, &ignored)
		var err error
		fs.Visit(func(f *flag.Flag) {
			if err == nil && f.Name != "config" {
				err = over.Set(f.Name, f.Value.String())
			}
		})
		if err != nil {
			return nil, errors.Wrap(err, "apply flags over config file")
		}
		conf = *merged
	}

	if err := conf.Validate(); err != nil {
		fmt.Fprintln(fs.Output(), err)
		return nil, err
	}
	return &conf, nil
}

func newFlagSet(name string, v Variant, c *Config, path *string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	const deviceUsage = "Capture device. Could be index or filename"
	fs.StringVar(&c.Device, "d", c.Device, deviceUsage)
	fs.StringVar(&c.Device, "device", c.Device, deviceUsage)

	switch v {
	case View:
		const indexUsage = "Use device as index. Set -i=false to use device as filename"
		fs.Var(invertedBool{&c.NoIndex}, "i", indexUsage)
		fs.Var(invertedBool{&c.NoIndex}, "index", indexUsage)
		fs.IntVar(&c.Width, "w", c.Width, "Capture width")
		fs.IntVar(&c.Width, "width", c.Width, "Capture width")
		fs.IntVar(&c.Height, "h", c.Height, "Capture height")
		fs.IntVar(&c.Height, "height", c.Height, "Capture height")
		fs.Float64Var(&c.FPS, "f", c.FPS, "Capture fps")
		fs.Float64Var(&c.FPS, "fps", c.FPS, "Capture fps")
		fs.StringVar(&c.QuitKey, "quit-key", c.QuitKey, "Key that closes the window")
	default:
		fs.BoolVar(&c.NoIndex, "no-index", c.NoIndex, "Use device as filename instead of index")
		fs.IntVar(&c.Width, "width", c.Width, "Capture width")
		fs.IntVar(&c.Height, "height", c.Height, "Capture height")
		fs.Float64Var(&c.FPS, "fps", c.FPS, "Capture fps")
		fs.IntVar(&c.Interval, "interval", c.Interval, "Frames per frametime report")
	}

	fs.StringVar(&c.FourCC, "fourcc", c.FourCC, "Requested pixel format")
	fs.StringVar(&c.Backend, "backend", c.Backend, "Capture backend: opencv or v4l2")
	fs.StringVar(&c.API, "api", c.API, "OpenCV capture api: any, v4l2, gstreamer, ffmpeg, dshow, msmf, avfoundation")
	fs.Var(optionalFloat{&c.Brightness}, "brightness", "Capture brightness (device default when unset)")
	fs.Var(optionalFloat{&c.Contrast}, "contrast", "Capture contrast (device default when unset)")
	fs.Var(optionalFloat{&c.Saturation}, "saturation", "Capture saturation (device default when unset)")
	fs.Var(optionalFloat{&c.Gamma}, "gamma", "Capture gamma (device default when unset)")
	fs.BoolVar(&c.Pace, "pace", c.Pace, "Throttle reads to the requested fps")
	fs.IntVar(&c.CPU, "cpu", c.CPU, "Pin the capture thread to this core (-1 disables)")
	fs.StringVar(&c.Socket, "status-socket", c.Socket, "Serve capture status on this unix socket (empty disables)")
	fs.StringVar(&c.PidFile, "pid-file", c.PidFile, "Refuse to start while another process owns this pid file")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json")
	fs.BoolVar(&c.Journal, "journal", c.Journal, "Send logs to the systemd journal")
	fs.StringVar(path, "config", *path, "JSON config file")

	return fs
}

// invertedBool exposes a "no" flag with the opposite polarity.
type invertedBool struct {
	p *bool
}

func (b invertedBool) String() string {
	if b.p == nil {
		return "true"
	}
	return strconv.FormatBool(!*b.p)
}

func (b invertedBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.p = !v
	return nil
}

func (b invertedBool) IsBoolFlag() bool { return true }

type optionalFloat struct {
	p **float64
}

func (f optionalFloat) String() string {
	if f.p == nil || *f.p == nil {
		return ""
	}
	return strconv.FormatFloat(**f.p, 'g', -1, 64)
}

func (f optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f.p = &v
	return nil
}
