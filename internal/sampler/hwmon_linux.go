//go:build linux

package sampler

import "context"

const sysClassRoot = "/sys/class"

func hardwareSensors(ctx context.Context) ([]HardwareSensor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := sysfsSensors(sysClassRoot)
	if len(list) == 0 {
		return nil, ErrNoSensor
	}
	return list, nil
}
