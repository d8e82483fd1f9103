package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	LogicalCPUs     int    `json:"logicalCpus"`
	TotalMemory     uint64 `json:"totalMemory"`
	AvailableMemory uint64 `json:"availableMemory"`
}

// DefaultNumWorkers returns the logical CPU count, falling back to the Go runtime's view
func DefaultNumWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ReadHostInfo reports CPU and memory figures. Memory is left zero when it cannot be read.
func ReadHostInfo() HostInfo {
	info := HostInfo{LogicalCPUs: DefaultNumWorkers()}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.AvailableMemory = vm.Available
	}

	return info
}
