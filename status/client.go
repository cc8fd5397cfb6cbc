package status

import (
	"bytes"
	"net"
	"time"

	"github.com/abihf/camprobe/protocol"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
)

// Fetch reads the status served on the unix socket at path.
func Fetch(path string, timeout time.Duration) (*protocol.Status, error) {
	client := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) {
			return net.DialTimeout("unix", path, timeout)
		},
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://camprobe/status")
	if err := client.DoTimeout(req, resp, timeout); err != nil {
		return nil, errors.Wrap(err, "Can not query status")
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, errors.Errorf("status request failed: %d", resp.StatusCode())
	}
	return protocol.ReadStatus(bytes.NewReader(resp.Body()))
}
