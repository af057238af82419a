//go:build windows

package sampler

import (
	"context"
	"errors"

	"github.com/yusufpapurcu/wmi"
)

// WMI namespaces published by OpenHardwareMonitor and its Libre fork while
// the monitor application is running.
var hwmonNamespaces = []string{
	`root\OpenHardwareMonitor`,
	`root\LibreHardwareMonitor`,
}

// wmiSensor mirrors the fields of the monitors' Sensor class we read.
type wmiSensor struct {
	Name       string
	SensorType string
	Value      float32
}

const sensorQuery = "SELECT Name, SensorType, Value FROM Sensor"

func hardwareSensors(ctx context.Context) ([]HardwareSensor, error) {
	var errs []error
	for _, ns := range hwmonNamespaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var dst []wmiSensor
		if err := wmi.QueryNamespace(sensorQuery, &dst, ns); err != nil {
			errs = append(errs, err)
			continue
		}

		list := make([]HardwareSensor, 0, len(dst))
		for _, s := range dst {
			list = append(list, HardwareSensor{Type: s.SensorType, Name: s.Name, Value: float64(s.Value)})
		}
		if _, err := firstProcessorTemp(list); err == nil {
			return list, nil
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, ErrNoSensor
}
