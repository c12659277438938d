package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats summarizes a progressive run
type RenderStats struct {
	Start           time.Time
	Elapsed         time.Duration
	Results         int     // results merged so far
	SamplesPerPixel int     // samples per pixel of a complete run
	Progress        float64 // fraction of the complete run
}

// NewRenderStats starts the clock for a run of samplesPerPixel samples
func NewRenderStats(samplesPerPixel int) *RenderStats {
	return &RenderStats{Start: time.Now(), SamplesPerPixel: samplesPerPixel}
}

// Update refreshes the counters from the framebuffer
func (s *RenderStats) Update(fb *Framebuffer) {
	s.Elapsed = time.Since(s.Start)
	s.Results = fb.Results()
	s.Progress = fb.Progress(s.SamplesPerPixel)
}

// ResultsPerSecond returns the aggregation throughput
func (s *RenderStats) ResultsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Results) / s.Elapsed.Seconds()
}

// Table renders the statistics as a text table
func (s *RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Elapsed", "Results", "Results/s", "Samples/pixel", "Progress"})
	table.Append([]string{
		s.Elapsed.Round(time.Millisecond).String(),
		fmt.Sprintf("%d", s.Results),
		fmt.Sprintf("%.0f", s.ResultsPerSecond()),
		fmt.Sprintf("%d", s.SamplesPerPixel),
		fmt.Sprintf("%02.1f %%", 100*s.Progress),
	})
	table.Render()
	return buf.String()
}
