package util

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const mib = 1024 * 1024

// HostInfo describes the machine the engine runs on.
type HostInfo struct {
	Hostname      string `json:"hostname"`
	Platform      string `json:"platform"`
	Arch          string `json:"arch"`
	CPUModel      string `json:"cpu_model"`
	CPUCores      int    `json:"cpu_cores"`
	MemoryTotalMB uint64 `json:"memory_total_mb"`
	GoVersion     string `json:"go_version"`
}

// Host collects HostInfo. Anything gopsutil cannot read stays at its
// runtime fallback or empty.
func Host() HostInfo {
	info := HostInfo{
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUCores:  runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		if h.Platform != "" {
			info.Platform = h.Platform + " " + h.PlatformVersion
		}
	} else if name, err := os.Hostname(); err == nil {
		info.Hostname = name
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotalMB = vm.Total / mib
	}
	return info
}

// ProcessUsage is a sample of this process's own footprint.
type ProcessUsage struct {
	PID        int32   `json:"pid"`
	CPUPercent float64 `json:"cpu_percent"`
	RSSMB      uint64  `json:"rss_mb"`
	Threads    int32   `json:"threads"`
	Goroutines int     `json:"goroutines"`
	HostMemPct float64 `json:"host_memory_percent"`
}

// Usage samples the current process. CPU is averaged over the process lifetime.
func Usage() (ProcessUsage, error) {
	usage := ProcessUsage{
		PID:        int32(os.Getpid()),
		Goroutines: runtime.NumGoroutine(),
	}

	p, err := process.NewProcess(usage.PID)
	if err != nil {
		return usage, fmt.Errorf("failed to open process %d: %w", usage.PID, err)
	}

	if pct, err := p.CPUPercent(); err == nil {
		usage.CPUPercent = pct
	}
	if m, err := p.MemoryInfo(); err == nil {
		usage.RSSMB = m.RSS / mib
	} else {
		return usage, fmt.Errorf("failed to read process memory: %w", err)
	}
	if n, err := p.NumThreads(); err == nil {
		usage.Threads = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		usage.HostMemPct = vm.UsedPercent
	}
	return usage, nil
}
