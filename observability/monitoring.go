// Package observability aggregates runtime counters and process metrics
// for periodic health logging. Logging is operational only and never part
// of the wire protocol.
package observability

import (
	"runtime"
	"sync/atomic"
)

// Stats is one point-in-time snapshot of the server's health counters.
type Stats struct {
	OpenConnections  uint64 `json:"open_connections"`
	TotalConnections uint64 `json:"total_connections"`
	FramesRead       uint64 `json:"frames_read"`
	AllocMemMB       uint64 `json:"alloc_mem_mb"`
	NumGC            uint32 `json:"num_gc"`
}

// Collector accumulates counters from the transport layer. All methods
// are safe for concurrent use and tolerate a nil receiver so callers can
// run without metrics wired.
type Collector struct {
	connectionsOpened atomic.Uint64
	connectionsClosed atomic.Uint64
	framesRead        atomic.Uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) ConnOpened() {
	if c == nil {
		return
	}
	c.connectionsOpened.Add(1)
}

func (c *Collector) ConnClosed() {
	if c == nil {
		return
	}
	c.connectionsClosed.Add(1)
}

func (c *Collector) FrameRead() {
	if c == nil {
		return
	}
	c.framesRead.Add(1)
}

// Snapshot merges the counters with Go heap statistics.
func (c *Collector) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	if c == nil {
		return Stats{AllocMemMB: mem.Alloc / 1024 / 1024, NumGC: mem.NumGC}
	}
	opened := c.connectionsOpened.Load()
	closed := c.connectionsClosed.Load()
	open := uint64(0)
	if opened > closed {
		open = opened - closed
	}
	return Stats{
		OpenConnections:  open,
		TotalConnections: opened,
		FramesRead:       c.framesRead.Load(),
		AllocMemMB:       mem.Alloc / 1024 / 1024,
		NumGC:            mem.NumGC,
	}
}
