package cv

import (
	"github.com/abihf/camprobe/capture"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ToMat converts a frame to a BGR Mat owned by the caller.
func ToMat(frame capture.Frame) (gocv.Mat, error) {
	switch f := frame.(type) {
	case *Frame:
		return f.mat.Clone(), nil
	case *capture.RawFrame:
		return rawToMat(f)
	default:
		return gocv.NewMat(), errors.Errorf("unsupported frame type %T", frame)
	}
}

func rawToMat(f *capture.RawFrame) (gocv.Mat, error) {
	switch f.Format {
	case capture.FormatYUYV:
		src, err := gocv.NewMatFromBytes(f.H, f.W, gocv.MatTypeCV8UC2, f.Data)
		if err != nil {
			return gocv.NewMat(), errors.Wrap(err, "Can not wrap YUYV frame")
		}
		defer src.Close()
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorYUVToBGRYUY2)
		return dst, nil

	case capture.FormatGREY:
		src, err := gocv.NewMatFromBytes(f.H, f.W, gocv.MatTypeCV8UC1, f.Data)
		if err != nil {
			return gocv.NewMat(), errors.Wrap(err, "Can not wrap GREY frame")
		}
		defer src.Close()
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorGrayToBGR)
		return dst, nil

	case capture.FormatMJPG:
		mat, err := gocv.IMDecode(f.Data, gocv.IMReadColor)
		if err != nil {
			return gocv.NewMat(), errors.Wrap(err, "Can not decode MJPG frame")
		}
		return mat, nil
	}
	return gocv.NewMat(), errors.Errorf("unsupported pixel format %s", f.Format)
}
