package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "1,000", formatCount(1000))
	assert.Equal(t, "12,345", formatCount(12345))
	assert.Equal(t, "1,234,567", formatCount(1234567))
	assert.Equal(t, "18,446,744,073,709,551,615", formatCount(NoLimit))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.00 KB", formatBytes(2048))
	assert.Equal(t, "1.50 MB", formatBytes(3*512*1024))
	assert.Equal(t, "1.00 GB", formatBytes(1<<30))
	assert.Equal(t, "2.00 TB", formatBytes(1<<41))
}

func TestFormatSummaryContents(t *testing.T) {
	r := &Result{
		Produced: 1000,
		Resumed:  20,
		Workers:  4,
		Elapsed:  2 * time.Second,
	}
	s := FormatSummary(r, 3)
	assert.Contains(t, s, "Produced:")
	assert.Contains(t, s, "1,000")
	assert.Contains(t, s, "Resumed at:")
	assert.Contains(t, s, "Throughput:")
	assert.Contains(t, s, "MB/s")
}

func TestBytesWritten(t *testing.T) {
	r := &Result{Produced: 10}
	// Each combination is length bytes plus a newline.
	assert.Equal(t, uint64(40), r.BytesWritten(3))
}

func TestTrackerBatchedAdds(t *testing.T) {
	tr := NewTracker(100)
	tr.Add(50)
	tr.Add(25)
	assert.Equal(t, uint64(75), tr.Produced())
	assert.Equal(t, uint64(175), tr.Cursor())
}

func TestColorReporterWritesFormattedLine(t *testing.T) {
	var buf strings.Builder
	r := &ColorReporter{Writer: &buf}
	r.Printf("progress: %s (%.1f%%)\n", "42", 50.0)
	assert.Contains(t, buf.String(), "progress: 42 (50.0%)")
}

func TestSilentReporterWritesNothing(t *testing.T) {
	r := &SilentReporter{}
	r.Printf("progress: %d\n", 42)
}

func TestTrackerAddProducedLeavesCursor(t *testing.T) {
	tr := NewTracker(100)
	tr.AddProduced(50)
	assert.Equal(t, uint64(50), tr.Produced())
	assert.Equal(t, uint64(100), tr.Cursor())
}
