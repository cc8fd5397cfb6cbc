// Package cv implements capture devices and display on top of OpenCV.
package cv

import (
	"github.com/abihf/camprobe/capture"
	"github.com/abihf/camprobe/config"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

var apis = map[string]gocv.VideoCaptureAPI{
	"any":          gocv.VideoCaptureAny,
	"v4l2":         gocv.VideoCaptureV4L2,
	"gstreamer":    gocv.VideoCaptureGstreamer,
	"ffmpeg":       gocv.VideoCaptureFFmpeg,
	"dshow":        gocv.VideoCaptureDshow,
	"msmf":         gocv.VideoCaptureMSMF,
	"avfoundation": gocv.VideoCaptureAVFoundation,
}

var props = map[capture.Property]gocv.VideoCaptureProperties{
	capture.PropFrameWidth:  gocv.VideoCaptureFrameWidth,
	capture.PropFrameHeight: gocv.VideoCaptureFrameHeight,
	capture.PropFPS:         gocv.VideoCaptureFPS,
	capture.PropFourCC:      gocv.VideoCaptureFOURCC,
	capture.PropBrightness:  gocv.VideoCaptureBrightness,
	capture.PropContrast:    gocv.VideoCaptureContrast,
	capture.PropSaturation:  gocv.VideoCaptureSaturation,
	capture.PropGamma:       gocv.VideoCaptureGamma,
}

// Versions returns the gocv and OpenCV versions.
func Versions() (gocvVersion, opencvVersion string) {
	return gocv.Version(), gocv.OpenCVVersion()
}

// Device is an OpenCV VideoCapture.
type Device struct {
	vc    *gocv.VideoCapture
	frame Frame
}

// Open opens an index or a file with the given capture API preference.
func Open(src config.Source, api string) (*Device, error) {
	pref, ok := apis[api]
	if !ok {
		return nil, errors.Errorf("unknown capture api %q", api)
	}

	var (
		vc  *gocv.VideoCapture
		err error
	)
	if src.IsIndex {
		vc, err = gocv.VideoCaptureDeviceWithAPI(src.Index, pref)
	} else {
		vc, err = gocv.VideoCaptureFileWithAPI(src.Path, pref)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Can not open %s %s", src.Kind(), src)
	}
	return &Device{vc: vc, frame: Frame{mat: gocv.NewMat()}}, nil
}

func (d *Device) Set(p capture.Property, v float64) {
	if prop, ok := props[p]; ok {
		d.vc.Set(prop, v)
	}
}

func (d *Device) Get(p capture.Property) float64 {
	if prop, ok := props[p]; ok {
		return d.vc.Get(prop)
	}
	return 0
}

func (d *Device) IsOpened() bool {
	return d.vc.IsOpened()
}

// Read decodes the next frame into the device's frame buffer.
func (d *Device) Read() (capture.Frame, error) {
	if ok := d.vc.Read(&d.frame.mat); !ok {
		return &capture.RawFrame{}, nil
	}
	return &d.frame, nil
}

func (d *Device) Close() error {
	d.frame.mat.Close()
	return d.vc.Close()
}

// Frame is a decoded BGR frame held in a Mat.
type Frame struct {
	mat gocv.Mat
}

func (f *Frame) Empty() bool   { return f.mat.Empty() }
func (f *Frame) Width() int    { return f.mat.Cols() }
func (f *Frame) Height() int   { return f.mat.Rows() }
func (f *Frame) Bytes() []byte { return f.mat.ToBytes() }
