package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

const progressBarWidth = 50

// drawProgressBar redraws a [####    ] 42% bar in place
func drawProgressBar(w io.Writer, fraction float64) {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * progressBarWidth)
	fmt.Fprintf(w, "\r[%s%s] %3.0f%%",
		strings.Repeat("#", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		fraction*100,
	)
}

func frameStatsTable(stats renderer.FrameStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Samples", "Segments", "Busy time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stats.RowPercent(stat)),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%d", stat.Segments),
			stat.BusyTime.String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d/%d", stats.RowsCompleted, stats.Height),
		"",
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d", stats.TotalSegments),
		stats.RenderTime.String(),
	})

	table.Render()
	return buf.String()
}

func displayFrameStats(stats renderer.FrameStats) {
	logger.Noticef("frame statistics (%dx%d, %d spp, %.2f segments/sample, %.0f segments/s)\n%s",
		stats.Width, stats.Height, stats.SamplesPerPixel,
		stats.AverageDepth(), stats.SegmentsPerSecond(),
		frameStatsTable(stats),
	)
}

func bvhStatsTable(stats geometry.BVHStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Primitives", "Nodes", "Leaf refs", "Max depth", "Avg leaf depth"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Primitives),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.LeafRefs),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgLeafDepth),
	})
	table.Render()
	return buf.String()
}

func displayBVHStats(stats geometry.BVHStats) {
	logger.Infof("bvh statistics\n%s", bvhStatsTable(stats))
}
