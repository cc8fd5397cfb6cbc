package capture

// Display renders frames and polls the keyboard.
type Display interface {
	Show(frame Frame) error
	// WaitKey waits up to delay milliseconds and returns the pressed key or -1.
	WaitKey(delay int) int
}

// DefaultQuitKey ends the display loop.
const DefaultQuitKey = 'q'

// ShowUntilKey returns a processor that renders every frame and stops when
// quit is pressed.
func ShowUntilKey(d Display, quit rune, delay int) Processor {
	if delay <= 0 {
		delay = 1
	}
	return func(frame Frame) (bool, error) {
		if err := d.Show(frame); err != nil {
			return false, err
		}
		key := d.WaitKey(delay)
		if key >= 0 && rune(key&0xFF) == quit {
			return false, nil
		}
		return true, nil
	}
}
