package camprobe

import (
	"context"
	"log/slog"

	"github.com/abihf/camprobe/capture"
	"github.com/abihf/camprobe/capture/cv"
	"github.com/abihf/camprobe/capture/v4l2"
	"github.com/abihf/camprobe/config"
	"github.com/abihf/camprobe/status"
	"github.com/abihf/camprobe/utils/pidfile"
	"github.com/abihf/camprobe/utils/thread"
	"github.com/pkg/errors"
)

// Opener opens the capture device for a resolved source.
type Opener func(conf *config.Config, src config.Source, log *slog.Logger) (capture.Device, error)

var openDevice Opener = Open

// Open opens src with the configured backend.
func Open(conf *config.Config, src config.Source, log *slog.Logger) (capture.Device, error) {
	switch conf.Backend {
	case config.BackendV4L2:
		path, err := src.DevicePath()
		if err != nil {
			return nil, err
		}
		dev, err := v4l2.Open(path, log)
		if err != nil {
			return nil, err
		}
		return dev, nil
	default:
		dev, err := cv.Open(src, conf.API)
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
}

// Probe reads frames as fast as the device delivers them and logs the
// average frame time.
func Probe(ctx context.Context, conf *config.Config, log *slog.Logger) error {
	return run(ctx, conf, log, nil)
}

// View shows the frames in a window until the quit key is pressed or the
// source runs dry.
func View(ctx context.Context, conf *config.Config, log *slog.Logger) error {
	return run(ctx, conf, log, func() (capture.Processor, func() error) {
		window := newDisplay("camview " + conf.Device)
		return capture.ShowUntilKey(window, conf.QuitRune(), 1), window.Close
	})
}

type display interface {
	capture.Display
	Close() error
}

var newDisplay = func(title string) display {
	return cv.NewWindow(title)
}

// processorFunc builds the per frame processor once the device is open.
type processorFunc func() (capture.Processor, func() error)

func run(ctx context.Context, conf *config.Config, log *slog.Logger, setup processorFunc) error {
	gocvVersion, opencvVersion := cv.Versions()
	log.Info("OpenCV version", "opencv", opencvVersion, "gocv", gocvVersion)

	src, err := config.Resolve(conf)
	if err != nil {
		log.Error("Cannot parse device as index", "device", conf.Device)
		return err
	}

	req, err := conf.Request()
	if err != nil {
		return err
	}

	if conf.PidFile != "" {
		release, err := pidfile.Acquire(conf.PidFile)
		if err != nil {
			return err
		}
		defer release()
	}

	if conf.CPU >= 0 {
		unpin, err := thread.Pin(conf.CPU)
		if err != nil {
			return err
		}
		defer unpin()
		log.Info("Capture thread pinned", "cpu", conf.CPU)
	}

	dev, err := openDevice(conf, src, log)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Info("VideoCapture use "+src.Kind(), src.Kind(), src.String(), "backend", conf.Backend)

	var processor capture.Processor
	if setup != nil {
		p, closeFn := setup()
		defer closeFn()
		processor = p
	}

	store := status.NewStore(src.String(), src.Kind(), conf.Backend)
	if conf.Socket != "" {
		srv := status.NewServer(store)
		if err := srv.Listen(conf.Socket); err != nil {
			log.Warn("Status server unavailable", "socket", conf.Socket, "error", err)
		} else {
			defer srv.Close()
			log.Info("Serving status", "socket", conf.Socket)
		}
	}

	mode := capture.Negotiate(dev, req, log)
	store.SetMode(mode)
	notifyReady(log)

	opt := &capture.Option{
		Interval: conf.Interval,
		Logger:   log,
		OnReport: func(rep capture.Report) {
			store.Report(rep)
			notifyStatus(log, rep)
		},
	}
	if conf.Pace {
		opt.Pace = conf.FPS
	}

	total, err := capture.Capture(ctx, dev, opt, processor)
	store.Stop(total, err)
	notifyStopping(log)
	if err != nil {
		return errors.Wrap(err, "Capture failed")
	}
	return nil
}
