package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HubStats is implemented by the registry.
type HubStats interface {
	Stats() (connections, groups int)
}

// TelemetryWorker periodically logs process health and hub occupancy. Log
// output is the only sink, this service has no monitoring master to report
// to.
type TelemetryWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	stats          HubStats
}

func NewTelemetryWorker(log *slog.Logger, metricInterval time.Duration, stats HubStats) *TelemetryWorker {
	return &TelemetryWorker{log: log, metricInterval: metricInterval, stats: stats}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			connections, groups := w.stats.Stats()

			rss := uint64(0)
			if mem, err := p.MemoryInfo(); err == nil {
				rss = mem.RSS
			}
			cpu, _ := p.CPUPercent()

			w.log.Info("Hub telemetry",
				"connections", connections,
				"groups", groups,
				"rss_bytes", rss,
				"cpu_percent", cpu,
			)
		}
	}
}
