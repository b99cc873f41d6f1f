package ui

// Scale bounds for the dial zoom.
const (
	minScale = 1.0
	maxScale = 4.0

	zoomStep = 0.25
	panStep  = 2 // canvas cells per key press
)

// ViewTransform is the dial's pan/zoom state. Pure UI state; the scale is
// clamped to [1,4] under every input sequence.
type ViewTransform struct {
	Scale   float64
	XOffset int
	YOffset int
}

// NewViewTransform returns the identity transform.
func NewViewTransform() ViewTransform {
	return ViewTransform{Scale: 1}
}

// ZoomIn increases the scale, saturating at the maximum.
func (v ViewTransform) ZoomIn() ViewTransform {
	v.Scale += zoomStep
	if v.Scale > maxScale {
		v.Scale = maxScale
	}
	return v
}

// ZoomOut decreases the scale, saturating at the minimum.
func (v ViewTransform) ZoomOut() ViewTransform {
	v.Scale -= zoomStep
	if v.Scale < minScale {
		v.Scale = minScale
	}
	return v
}

// Pan shifts the view by whole cells.
func (v ViewTransform) Pan(dx, dy int) ViewTransform {
	v.XOffset += dx
	v.YOffset += dy
	return v
}

// Reset returns the identity transform.
func (v ViewTransform) Reset() ViewTransform {
	return NewViewTransform()
}
