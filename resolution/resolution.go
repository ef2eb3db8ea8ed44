// Package resolution holds the geometry math shared by every page of a
// batch: the derived output DPI, per-axis pixel resizing, and the
// pixel-to-point conversion that sizes each PDF page to exactly fit its
// image.
package resolution

import "math"

// PointsPerInch is the PDF user-space unit density.
const PointsPerInch = 72

// Model is the resolution model for one batch run. OutputDPI is always
// derived as SourceDPI/Divisor by [Compute]; both inputs must be
// strictly positive, which the prompting layer guarantees before a
// Model is ever built.
type Model struct {
	SourceDPI float64
	Divisor   float64
	OutputDPI float64
}

// PageSize is the physical page box in points. One PageSize corresponds
// to exactly one resized image.
type PageSize struct {
	Width  float64
	Height float64
}

// Compute derives the model once for a batch. The same Model is reused
// for every directory and image in the run.
func Compute(sourceDPI, divisor float64) Model {
	return Model{
		SourceDPI: sourceDPI,
		Divisor:   divisor,
		OutputDPI: sourceDPI / divisor,
	}
}

// Resize maps one original pixel dimension to its resized value,
// rounding to the nearest integer. Truncation would bias pages smaller,
// so both axes round independently via math.Round.
func (m Model) Resize(d int) int {
	return int(math.Round(float64(d) / m.Divisor))
}

// PagePoints converts one resized pixel dimension to points at the
// derived output DPI. The multiplication happens before the division so
// mathematically integral results stay exact in float64.
func (m Model) PagePoints(d int) float64 {
	return float64(d) * PointsPerInch / m.OutputDPI
}

// PageSizeFor gives the page box in points for an image of the given
// resized pixel dimensions.
func (m Model) PageSizeFor(width, height int) PageSize {
	return PageSize{
		Width:  m.PagePoints(width),
		Height: m.PagePoints(height),
	}
}
