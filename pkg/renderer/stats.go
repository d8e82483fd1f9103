package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	SamplesPerPixel  int           // Samples taken for every pixel
	NumWorkers       int           // Workers used for the render
	Seed             int64         // Base seed actually used
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean Rec.709 luminance of the clamped image
}

// CalculateAverageLuminance returns the mean luminance over all pixels of a buffer
func CalculateAverageLuminance(buf *PixelBuffer) float64 {
	if len(buf.Pixels) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range buf.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(buf.Pixels))
}
