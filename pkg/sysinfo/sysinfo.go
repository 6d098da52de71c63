package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Host describes the machine a render runs on
type Host struct {
	CPUModel     string
	LogicalCores int
	ClockGHz     float64
	TotalRAMGB   uint64
}

// Detect collects host information. Fields that cannot be read are left at
// their zero value, except LogicalCores which falls back to runtime.NumCPU.
func Detect() Host {
	host := Host{LogicalCores: LogicalCores()}

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		host.CPUModel = info[0].ModelName
		host.ClockGHz = info[0].Mhz / 1000
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		host.TotalRAMGB = memInfo.Total / (1024 * 1024 * 1024)
	}
	return host
}

// LogicalCores returns the number of logical CPUs, the default worker count
func LogicalCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// String renders a one-line host summary
func (h Host) String() string {
	model := h.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s, %d logical cores @ %.2f GHz, %d GB RAM", model, h.LogicalCores, h.ClockGHz, h.TotalRAMGB)
}
