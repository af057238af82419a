// Package sampler reads CPU, memory and temperature from the host.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// Reading is one host sample.
type Reading struct {
	CPUPercent float64
	MemPercent float64
	TempC      float64 // 0 when no sensor answered
}

// Host samples the local machine through gopsutil. CPU percent is the delta
// since the previous call, so the first call after Warmup is meaningful.
type Host struct {
	temp *Chain
	log  *zap.Logger
}

// NewHost builds a sampler using chain for temperature. A nil chain means
// DefaultChain.
func NewHost(chain *Chain, log *zap.Logger) *Host {
	if chain == nil {
		chain = DefaultChain(log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{temp: chain, log: log}
}

// Warmup primes the CPU delta with a short blocking measurement.
func (h *Host) Warmup(ctx context.Context) {
	if _, err := cpu.PercentWithContext(ctx, 100*time.Millisecond, false); err != nil {
		h.log.Debug("cpu warmup failed", zap.Error(err))
	}
}

// CPUAndMem returns system-wide CPU and memory utilisation without blocking.
func (h *Host) CPUAndMem(ctx context.Context) (cpuPct, memPct float64, err error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(pcts) > 0 {
		cpuPct = pcts[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("virtual memory: %w", err)
	}
	return cpuPct, vm.UsedPercent, nil
}

// Temperature runs the fallback chain. It never fails.
func (h *Host) Temperature(ctx context.Context) float64 {
	return h.temp.Read(ctx)
}

// Sample gathers a full Reading. Only CPU and memory errors surface.
func (h *Host) Sample(ctx context.Context) (Reading, error) {
	c, m, err := h.CPUAndMem(ctx)
	if err != nil {
		return Reading{}, err
	}
	return Reading{CPUPercent: c, MemPercent: m, TempC: h.Temperature(ctx)}, nil
}
