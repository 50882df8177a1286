package engine

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
)

// FormatSummary renders the end-of-run report.
func FormatSummary(r *Result, length int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint("----------------------------------------"))
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("Run summary"))
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint("----------------------------------------"))
	b.WriteString("\n")

	b.WriteString(color.Bold.Sprint("Produced:   "))
	b.WriteString(fmt.Sprintf("%s\n", formatCount(r.Produced)))
	if r.Resumed > 0 {
		b.WriteString(color.Bold.Sprint("Resumed at: "))
		b.WriteString(fmt.Sprintf("%s\n", formatCount(r.Resumed)))
	}
	b.WriteString(color.Bold.Sprint("Workers:    "))
	b.WriteString(fmt.Sprintf("%d\n", r.Workers))
	b.WriteString(color.Bold.Sprint("Elapsed:    "))
	b.WriteString(fmt.Sprintf("%.3f s\n", r.Elapsed.Seconds()))

	if r.Elapsed > 0 && r.Produced > 0 {
		rate := float64(r.Produced) / r.Elapsed.Seconds()
		b.WriteString(color.Bold.Sprint("Throughput: "))
		b.WriteString(fmt.Sprintf("%.2f M/s\n", rate/1_000_000))

		bytes := r.BytesWritten(length)
		b.WriteString(color.Bold.Sprint("Data:       "))
		b.WriteString(fmt.Sprintf("%s (%.2f MB/s)\n",
			formatBytes(bytes), float64(bytes)/r.Elapsed.Seconds()/(1<<20)))
	}

	b.WriteString(color.Gray.Sprint("----------------------------------------"))
	b.WriteString("\n")
	return b.String()
}

// formatCount groups a count with thousands separators.
func formatCount(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatBytes humanizes a byte count.
func formatBytes(n uint64) string {
	const (
		kb = uint64(1024)
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case n >= tb:
		return fmt.Sprintf("%.2f TB", float64(n)/float64(tb))
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
