package status

import (
	"log/slog"
	"net"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Server serves the status store over HTTP.
type Server struct {
	app   *fiber.App
	store *Store
}

func NewServer(store *Store) *Server {
	s := &Server{store: store}

	app := fiber.New(fiber.Config{
		AppName:               "camprobe",
		DisableStartupMessage: true,
	})
	app.Get("/status", s.handleStatus)

	s.app = app
	return s
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	st := s.store.Status()
	return c.JSON(&st)
}

// Listen serves on a unix socket at path, replacing a stale socket file. It
// returns once the socket is bound; Close stops the server.
func (s *Server) Listen(path string) error {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return errors.Wrap(err, "Listen error")
	}
	os.Chmod(path, 0666)

	go func() {
		if err := s.app.Listener(ln); err != nil {
			slog.Warn("Status server stopped", "error", err)
		}
	}()
	return nil
}

func (s *Server) Close() error {
	return s.app.Shutdown()
}
