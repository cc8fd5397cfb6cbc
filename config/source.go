package config

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidIndex is returned when the device is not a number in index mode.
var ErrInvalidIndex = errors.New("cannot parse device as index")

// Source is a resolved capture device: either an index or a path.
type Source struct {
	Index   int    `json:"index"`
	Path    string `json:"path,omitempty"`
	IsIndex bool   `json:"is_index"`
}

// Resolve interprets the configured device. Nothing is opened.
func Resolve(c *Config) (Source, error) {
	if c.NoIndex {
		return Source{Path: c.Device}, nil
	}
	idx, err := strconv.Atoi(c.Device)
	if err != nil {
		return Source{}, errors.Wrapf(ErrInvalidIndex, "%q", c.Device)
	}
	return Source{Index: idx, IsIndex: true}, nil
}

func (s Source) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Path
}

// Kind names the interpretation used in logs.
func (s Source) Kind() string {
	if s.IsIndex {
		return "index"
	}
	return "filename"
}

// DevicePath maps the source to a V4L2 device node.
func (s Source) DevicePath() (string, error) {
	if !s.IsIndex {
		return s.Path, nil
	}
	if s.Index < 0 {
		return "", errors.Errorf("no device node for index %d", s.Index)
	}
	return fmt.Sprintf("/dev/video%d", s.Index), nil
}
