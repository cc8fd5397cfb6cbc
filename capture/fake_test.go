package capture

import (
	"time"
)

type fakeDevice struct {
	frames  []Frame
	readErr error
	opened  bool

	props   map[Property]float64
	applied func(Property, float64) float64

	sets  []Property
	gets  []Property
	reads int
}

func newFakeDevice(frames ...Frame) *fakeDevice {
	return &fakeDevice{
		frames: frames,
		opened: true,
		props:  map[Property]float64{},
	}
}

func (d *fakeDevice) Set(p Property, v float64) {
	d.sets = append(d.sets, p)
	if d.applied != nil {
		v = d.applied(p, v)
	}
	d.props[p] = v
}

func (d *fakeDevice) Get(p Property) float64 {
	d.gets = append(d.gets, p)
	return d.props[p]
}

func (d *fakeDevice) IsOpened() bool { return d.opened }

func (d *fakeDevice) Read() (Frame, error) {
	d.reads++
	if d.readErr != nil {
		return nil, d.readErr
	}
	if len(d.frames) == 0 {
		return &RawFrame{}, nil
	}
	f := d.frames[0]
	d.frames = d.frames[1:]
	return f, nil
}

func (d *fakeDevice) Close() error {
	d.opened = false
	return nil
}

func frames(n int) []Frame {
	out := make([]Frame, n)
	for i := range out {
		out[i] = &RawFrame{W: 2, H: 1, Format: FormatYUYV, Data: []byte{16, 128, 200, 128}}
	}
	return out
}

// fakeClock advances by step every time it is read.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}
