package renderer

import "time"

// WorkerStats contains what a single worker contributed to a frame
type WorkerStats struct {
	ID       int           // Worker index
	Rows     int           // Rows completed
	Samples  int           // Camera samples taken
	Segments int           // Ray segments cast against the world
	BusyTime time.Duration // Time spent rendering rows
}

// FrameStats contains statistics about the rendering process
type FrameStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	RowsCompleted   int
	TotalSamples    int
	TotalSegments   int
	RenderTime      time.Duration
	Interrupted     bool
	Workers         []WorkerStats
}

// AverageDepth returns the mean number of segments per camera sample
func (s FrameStats) AverageDepth() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.TotalSegments) / float64(s.TotalSamples)
}

// RowPercent returns the share of frame rows a worker rendered
func (s FrameStats) RowPercent(w WorkerStats) float64 {
	if s.Height == 0 {
		return 0
	}
	return 100 * float64(w.Rows) / float64(s.Height)
}

// SegmentsPerSecond returns throughput over the wall-clock render time
func (s FrameStats) SegmentsPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSegments) / s.RenderTime.Seconds()
}

func (s *FrameStats) add(result RowResult) {
	s.RowsCompleted++
	s.TotalSamples += result.Samples
	s.TotalSegments += result.Segments

	w := &s.Workers[result.WorkerID]
	w.Rows++
	w.Samples += result.Samples
	w.Segments += result.Segments
	w.BusyTime += result.Duration
}
