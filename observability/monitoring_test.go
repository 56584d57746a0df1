package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	req := require.New(t)
	collector := NewCollector()

	collector.ConnOpened()
	collector.ConnOpened()
	collector.ConnOpened()
	collector.ConnClosed()
	collector.FrameRead()
	collector.FrameRead()

	stats := collector.Snapshot()

	req.Equal(uint64(2), stats.OpenConnections)
	req.Equal(uint64(3), stats.TotalConnections)
	req.Equal(uint64(2), stats.FramesRead)
}

func TestCollector_NilReceiverIsSafe(t *testing.T) {
	req := require.New(t)
	var collector *Collector

	collector.ConnOpened()
	collector.ConnClosed()
	collector.FrameRead()

	stats := collector.Snapshot()
	req.Zero(stats.OpenConnections)
	req.Zero(stats.TotalConnections)
	req.Zero(stats.FramesRead)
}
