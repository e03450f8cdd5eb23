package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/steveyegge/simclust/internal/cluster"
	"github.com/steveyegge/simclust/internal/deduplication"
	"github.com/steveyegge/simclust/internal/metric"
)

// printStats writes a human-readable summary of a run to w.
func printStats(w io.Writer, kind metric.Kind, s cluster.Stats, dedup *deduplication.Stats) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", cyan("=== Clustering Summary ==="))
	fmt.Fprintf(w, "  Metric:     %s\n", kind)
	if dedup != nil {
		fmt.Fprintf(w, "  Input:      %s records (%s duplicates collapsed)\n",
			formatNumber(dedup.TotalRecords), formatNumber(dedup.DuplicateCount))
	}
	fmt.Fprintf(w, "  Records:    %s\n", formatNumber(s.Records))
	fmt.Fprintf(w, "  Pairs:      %s evaluated, %s accepted\n",
		formatNumber(s.PairsEvaluated), formatNumber(s.Accepted))
	fmt.Fprintf(w, "  Workers:    %d\n", s.Workers)
	fmt.Fprintf(w, "  Duration:   %s\n", s.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "%s %s clusters", green("✓"), formatNumber(s.Clusters))
	if s.Singletons > 0 {
		fmt.Fprintf(w, ", %s", yellow(formatNumber(s.Singletons)+" singletons"))
	}
	fmt.Fprintln(w)
}

// formatNumber formats a number with thousand separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	digits := strconv.Itoa(n)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	out := digits[:head]
	for i := head; i < len(digits); i += 3 {
		out += "," + digits[i:i+3]
	}
	return out
}
