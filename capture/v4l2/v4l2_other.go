//go:build !linux

package v4l2

import (
	"log/slog"

	"github.com/abihf/camprobe/capture"
	"github.com/pkg/errors"
)

var errUnsupported = errors.New("v4l2 backend is only available on linux")

type Device struct {
	capture.Device
}

func Open(path string, log *slog.Logger) (*Device, error) {
	return nil, errUnsupported
}
