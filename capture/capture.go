package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// Processor handles a frame. Returning false stops the capture.
type Processor func(frame Frame) (bool, error)

type Option struct {
	// Interval is the number of frames per timing report.
	Interval int
	// Pace throttles delivery to this many frames per second. Zero reads as
	// fast as the device allows.
	Pace   float64
	Logger *slog.Logger
	// OnReport is called after each timing report is logged.
	OnReport func(Report)

	now   func() time.Time
	sleep func(time.Duration)
}

func (o *Option) clock() (func() time.Time, func(time.Duration)) {
	now, sleep := time.Now, time.Sleep
	if o.now != nil {
		now = o.now
	}
	if o.sleep != nil {
		sleep = o.sleep
	}
	return now, sleep
}

// Capture reads frames from dev until the source runs dry, the device
// closes, the processor stops it or ctx is cancelled. It returns the number
// of frames read.
func Capture(ctx context.Context, dev Device, opt *Option, processor Processor) (uint64, error) {
	if opt == nil {
		opt = &Option{}
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	now, sleep := opt.clock()

	var budget time.Duration
	if opt.Pace > 0 {
		budget = time.Duration(float64(time.Second) / opt.Pace)
	}

	start := now()
	timer := NewFrameTimer(opt.Interval, start)
	last := start
	for dev.IsOpened() {
		if ctx.Err() != nil {
			log.Info("Capture interrupted", "total", timer.Total())
			return timer.Total(), nil
		}

		frame, err := dev.Read()
		if err != nil {
			return timer.Total(), errors.Wrap(err, "Read frame failed")
		}
		if frame == nil || frame.Empty() {
			log.Info("Frame is empty")
			return timer.Total(), nil
		}

		if rep, ok := timer.Tick(now()); ok {
			log.Info("Average frametime",
				"ms", roundMillis(rep.AverageMillis()),
				"total", rep.Total,
			)
			if log.Enabled(ctx, slog.LevelDebug) {
				img := frame.Bytes()
				log.Debug("Frame black level",
					"dark_ratio", DarkRatio(img),
					"good_black_level", HasGoodBlackLevel(img),
					"width", frame.Width(),
					"height", frame.Height(),
				)
			}
			if opt.OnReport != nil {
				opt.OnReport(rep)
			}
		}

		if processor != nil {
			cont, err := processor(frame)
			if err != nil {
				return timer.Total(), err
			}
			if !cont {
				return timer.Total(), nil
			}
		}

		if budget > 0 {
			elapsed := now().Sub(last)
			diff := budget - elapsed
			if diff < 0 {
				log.Warn("Frame took longer than budget", "elapsed", elapsed, "budget", budget)
			} else {
				sleep(diff)
			}
			last = now()
		}
	}

	log.Info("Capture closed", "total", timer.Total())
	return timer.Total(), nil
}

func roundMillis(ms float64) float64 {
	return float64(int64(ms*100+0.5)) / 100
}
