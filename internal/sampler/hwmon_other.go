//go:build !linux && !windows

package sampler

import (
	"context"
	"errors"
)

func hardwareSensors(context.Context) ([]HardwareSensor, error) {
	return nil, errors.ErrUnsupported
}
