package pidfile

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

var ErrAlreadyRunning = errors.New("already run")

// Acquire writes the current pid to path unless a live process already owns
// it. The returned function removes the file.
func Acquire(path string) (func(), error) {
	if isAlreadyRun(path) {
		return nil, errors.Wrap(ErrAlreadyRunning, path)
	}
	if err := writeLockFile(path); err != nil {
		return nil, errors.Wrap(err, "Can not write pid file")
	}
	return func() { os.Remove(path) }, nil
}

func isAlreadyRun(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	pidStr, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Can not read pid file", "path", path, "error", err)
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(pidStr)))
	if err != nil {
		slog.Warn("Invalid existing pid file", "path", path, "error", err)
		return false
	}
	if pid == os.Getpid() {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		slog.Warn("Can not find process", "pid", pid, "error", err)
		return false
	}

	return proc.Signal(syscall.Signal(0)) == nil
}

func writeLockFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	return f.Close()
}
