//go:build !linux

package thread

import "github.com/pkg/errors"

func SetCPUAffinity(coreID int) error {
	return errors.New("cpu affinity is only supported on linux")
}

func Pin(coreID int) (func(), error) {
	return nil, SetCPUAffinity(coreID)
}
