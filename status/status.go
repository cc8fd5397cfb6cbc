// Package status tracks the state of a running capture and serves it over a
// unix socket.
package status

import (
	"sync"
	"time"

	"github.com/abihf/camprobe/capture"
	"github.com/abihf/camprobe/protocol"
)

// Store holds the latest capture status. It is written by the capture loop
// and read by the status server.
type Store struct {
	mu sync.RWMutex
	st protocol.Status
}

func NewStore(device, kind, backend string) *Store {
	return &Store{st: protocol.Status{
		Device:  device,
		Kind:    kind,
		Backend: backend,
		State:   protocol.StateStarting,
		Updated: time.Now(),
	}}
}

func (s *Store) SetMode(mode capture.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Mode = mode
	s.st.State = protocol.StateStreaming
	s.st.Updated = time.Now()
}

func (s *Store) Report(rep capture.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Total = rep.Total
	s.st.AverageMs = rep.AverageMillis()
	s.st.FPS = rep.FPS()
	s.st.Updated = rep.At
}

// Stop marks the capture as finished with the final frame count.
func (s *Store) Stop(total uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.State = protocol.StateStopped
	s.st.Total = total
	if err != nil {
		s.st.Error = err.Error()
	}
	s.st.Updated = time.Now()
}

func (s *Store) Status() protocol.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}
