package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/application/scene/playing"
	"github.com/younwookim/wallrun/internal/application/system"
)

// printSummary writes the outcome of a headless replay
func printSummary(w io.Writer, stats playing.Stats, final mgl64.Vec3) {
	fmt.Fprintf(w, "frames:      %d\n", stats.Frames)
	fmt.Fprintf(w, "wall runs:   %d\n", stats.WallRuns)
	fmt.Fprintf(w, "longest run: %.3fs\n", stats.LongestRun)

	reasons := make([]system.StopReason, 0, len(stats.Stops))
	for r := range stats.Stops {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, r := range reasons {
		fmt.Fprintf(w, "  stop %-14s %d\n", r.String()+":", stats.Stops[r])
	}

	fmt.Fprintf(w, "final:       (%.1f, %.1f, %.1f)\n", final.X(), final.Y(), final.Z())
}
