package workers

import (
	"context"
	"direct-chat/contract"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

const DefaultHeartbeatInterval = 30 * time.Second

// Stats is one heartbeat sample.
type Stats struct {
	OnlineUsers int
	Connections int
	RSSBytes    uint64
}

// HeartbeatWorker periodically logs how many users are connected and how
// much memory the process holds.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	interval time.Duration
	report   func(Stats)
}

func NewHeartbeatWorker(log *slog.Logger, registry contract.IRegistry, interval time.Duration) *HeartbeatWorker {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	w := &HeartbeatWorker{log: log, registry: registry, interval: interval}
	w.report = w.logStats
	return w
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.report(w.sample(p))
		}
	}
}

func (w *HeartbeatWorker) sample(p *process.Process) Stats {
	stats := Stats{
		OnlineUsers: len(w.registry.OnlineUsers()),
		Connections: w.registry.ConnectionCount(),
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		w.log.Debug("Failed to read process memory", "error", err)
		return stats
	}
	stats.RSSBytes = memInfo.RSS
	return stats
}

func (w *HeartbeatWorker) logStats(stats Stats) {
	w.log.Info("Heartbeat",
		"online_users", stats.OnlineUsers,
		"connections", stats.Connections,
		"rss_bytes", stats.RSSBytes)
}
