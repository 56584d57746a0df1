package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/imanolof29/chat/observability"
)

// HealthMonitor logs a health snapshot (connection counters, heap, and
// process CPU/RSS) at a fixed interval.
type HealthMonitor struct {
	log       *slog.Logger
	collector *observability.Collector
	interval  time.Duration
}

func NewHealthMonitor(log *slog.Logger, collector *observability.Collector, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{log: log, collector: collector, interval: interval}
}

func (w *HealthMonitor) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping health monitor worker")
			return nil
		case <-ticker.C:
			stats := w.collector.Snapshot()
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Warn("Failed to collect self stats", "err", err)
				continue
			}
			w.log.Info("health",
				"open_connections", stats.OpenConnections,
				"total_connections", stats.TotalConnections,
				"frames_read", stats.FramesRead,
				"alloc_mem_mb", stats.AllocMemMB,
				"num_gc", stats.NumGC,
				"cpu_percent", cpu,
				"rss_bytes", rss,
			)
		}
	}
}

// selfStats retrieves memory and CPU metrics for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
