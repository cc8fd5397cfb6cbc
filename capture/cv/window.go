package cv

import (
	"github.com/abihf/camprobe/capture"
	"gocv.io/x/gocv"
)

// Window shows frames in a HighGUI window.
type Window struct {
	w *gocv.Window
}

func NewWindow(title string) *Window {
	return &Window{w: gocv.NewWindow(title)}
}

func (w *Window) Show(frame capture.Frame) error {
	if f, ok := frame.(*Frame); ok {
		w.w.IMShow(f.mat)
		return nil
	}

	mat, err := ToMat(frame)
	if err != nil {
		return err
	}
	defer mat.Close()
	w.w.IMShow(mat)
	return nil
}

func (w *Window) WaitKey(delay int) int {
	return w.w.WaitKey(delay)
}

func (w *Window) Close() error {
	return w.w.Close()
}
