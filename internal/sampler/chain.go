package sampler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
	"go.uber.org/zap"
)

// ErrNoSensor is returned by a Source that found nothing usable.
var ErrNoSensor = errors.New("no usable temperature sensor")

// Source is one tier of the temperature fallback chain.
type Source struct {
	Name string
	Read func(ctx context.Context) (float64, error)
}

// Chain queries its sources in order and returns the first success.
// Failures are logged at debug level and otherwise swallowed; when every
// tier fails the result is 0.
type Chain struct {
	sources []Source
	log     *zap.Logger
}

// NewChain builds a chain over sources, in priority order.
func NewChain(log *zap.Logger, sources ...Source) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{sources: sources, log: log}
}

// DefaultChain is gopsutil sensors first, then the platform hardware monitor.
func DefaultChain(log *zap.Logger) *Chain {
	return NewChain(log,
		Source{Name: "sensors", Read: SensorsTemperature},
		Source{Name: "hwmon", Read: HardwareMonitorTemperature},
	)
}

// Read returns the first tier's value, or 0.
func (c *Chain) Read(ctx context.Context) float64 {
	v, _ := c.ReadSource(ctx)
	return v
}

// ReadSource is Read plus the name of the tier that answered ("" when the
// default was used).
func (c *Chain) ReadSource(ctx context.Context) (float64, string) {
	for _, s := range c.sources {
		v, err := c.try(ctx, s)
		if err == nil {
			return v, s.Name
		}
		c.log.Debug("temperature source failed", zap.String("source", s.Name), zap.Error(err))
	}
	return 0, ""
}

// try turns a panicking source into an error.
func (c *Chain) try(ctx context.Context, s Source) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", s.Name, r)
		}
	}()
	return s.Read(ctx)
}

// SensorsTemperature returns the first non-zero reading gopsutil reports.
func SensorsTemperature(ctx context.Context) (float64, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if len(temps) == 0 {
		if err != nil {
			return 0, fmt.Errorf("sensors: %w", err)
		}
		return 0, ErrNoSensor
	}
	// gopsutil may return partial results alongside warnings; use them.
	for _, t := range temps {
		if t.Temperature != 0 {
			return t.Temperature, nil
		}
	}
	return 0, ErrNoSensor
}

// HardwareSensor is one entry reported by a platform hardware monitor.
type HardwareSensor struct {
	Type  string // "Temperature", "Load", "Clock", ...
	Name  string
	Value float64
}

// sensorKeywords select CPU/GPU-ish entries from a hardware monitor listing.
var sensorKeywords = []string{"cpu", "gpu", "package", "core"}

// matchesProcessorTemp reports whether s is a temperature sensor whose name
// looks like a processor or GPU.
func matchesProcessorTemp(s HardwareSensor) bool {
	if s.Type != "Temperature" {
		return false
	}
	name := strings.ToLower(s.Name)
	for _, kw := range sensorKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// firstProcessorTemp picks the first matching entry from a listing.
func firstProcessorTemp(list []HardwareSensor) (float64, error) {
	for _, s := range list {
		if matchesProcessorTemp(s) {
			return s.Value, nil
		}
	}
	return 0, ErrNoSensor
}

// HardwareMonitorTemperature queries the platform hardware monitor (WMI on
// Windows, sysfs on Linux).
func HardwareMonitorTemperature(ctx context.Context) (float64, error) {
	list, err := hardwareSensors(ctx)
	if err != nil {
		return 0, fmt.Errorf("hwmon: %w", err)
	}
	return firstProcessorTemp(list)
}
