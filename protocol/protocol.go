package protocol

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abihf/camprobe/capture"
)

// GetSockAddress returns the default status socket of the current user.
func GetSockAddress() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir + "/camprobe.sock"
	}
	return fmt.Sprintf("/run/user/%d/camprobe.sock", os.Getuid())
}

type State string

const (
	StateStarting  State = "starting"
	StateStreaming State = "streaming"
	StateStopped   State = "stopped"
)

// Status is the capture state served on the status socket.
type Status struct {
	Device    string       `json:"device"`
	Kind      string       `json:"kind"`
	Backend   string       `json:"backend"`
	State     State        `json:"state"`
	Mode      capture.Mode `json:"mode"`
	Total     uint64       `json:"total"`
	AverageMs float64      `json:"average_ms"`
	FPS       float64      `json:"fps"`
	Updated   time.Time    `json:"updated"`
	Error     string       `json:"error,omitempty"`
}

func ReadStatus(r io.Reader) (*Status, error) {
	var st Status
	err := json.NewDecoder(r).Decode(&st)
	return &st, err
}

// WriteStatus writes st as indented JSON.
func WriteStatus(w io.Writer, st *Status) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

// Summary is the one line form printed by camstat.
func (s *Status) Summary() string {
	line := fmt.Sprintf("%s %s (%s, %s): %dx%d@%g %s",
		s.State, s.Device, s.Kind, s.Backend,
		s.Mode.Width, s.Mode.Height, s.Mode.FPS, s.Mode.Format)
	if s.Total > 0 {
		line += fmt.Sprintf(", average frametime %.2fms@%d", s.AverageMs, s.Total)
	}
	if s.Error != "" {
		line += ", error: " + s.Error
	}
	return line
}
