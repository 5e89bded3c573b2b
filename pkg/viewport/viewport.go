// Package viewport tracks the zoom and pan state for an interactive tree
// view and converts between world and screen coordinates.
//
// A Viewport is a small state machine over (zoom, panX, panY). Every
// operation is a total function: out-of-range zooms are clamped into the
// configured bounds and degenerate fit requests fall back to 1:1, so
// there is no invalid state and no failure mode.
//
// The rendering transform is scale-then-translate: a world point w maps
// to the screen as zoom * (w + pan). Pan is therefore expressed in world
// units, which is what makes [Viewport.PanBy] feel speed-consistent at
// any zoom level. Renderers must apply the two steps in this order;
// [Viewport.Apply] does it for them.
//
// A Viewport is not safe for concurrent use. It models inherently
// sequential input (wheel ticks, drag deltas), so a single owner, such as
// one event loop, must serialize access.
package viewport

// Default zoom bounds and the conventional wheel step.
const (
	DefaultZoomMin = 0.3
	DefaultZoomMax = 3.0

	// WheelZoomFactor is the multiplicative zoom step for one discrete
	// wheel or key event: ZoomBy(WheelZoomFactor) zooms in one notch,
	// ZoomBy(1/WheelZoomFactor) zooms out one.
	WheelZoomFactor = 1.1
)

// Viewport holds the current view transform. Create one with [New].
type Viewport struct {
	zoom    float64
	panX    float64
	panY    float64
	zoomMin float64
	zoomMax float64
}

// Option configures a Viewport at construction.
type Option func(*Viewport)

// WithZoomBounds overrides the zoom clamp range. Bounds that make no
// sense (non-positive values, or min above max) are ignored in favor of
// the defaults, keeping construction total.
func WithZoomBounds(min, max float64) Option {
	return func(v *Viewport) {
		if min <= 0 || max <= 0 || min > max {
			return
		}
		v.zoomMin, v.zoomMax = min, max
	}
}

// New returns a viewport at zoom 1.0 with pan (0,0).
func New(opts ...Option) *Viewport {
	v := &Viewport{
		zoom:    1.0,
		zoomMin: DefaultZoomMin,
		zoomMax: DefaultZoomMax,
	}
	for _, opt := range opts {
		opt(v)
	}
	// Bounds that exclude 1.0 still need a valid starting zoom.
	v.zoom = v.clamp(1.0)
	return v
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the current pan offset in world units.
func (v *Viewport) Pan() (x, y float64) { return v.panX, v.panY }

// ZoomBounds returns the clamp range for zoom values.
func (v *Viewport) ZoomBounds() (min, max float64) { return v.zoomMin, v.zoomMax }

// SetZoom stores the requested zoom clamped into the configured bounds.
// Zero, negative, and out-of-range requests all clamp rather than error.
func (v *Viewport) SetZoom(requested float64) {
	v.zoom = v.clamp(requested)
}

// ZoomBy multiplies the current zoom by factor, clamped. Wheel-style
// input uses factor [WheelZoomFactor] per notch.
func (v *Viewport) ZoomBy(factor float64) {
	v.SetZoom(v.zoom * factor)
}

// PanBy shifts the view by a screen-space delta. The delta is divided by
// the current zoom before accumulating, so a drag of n screen pixels
// always moves the content n pixels regardless of zoom.
func (v *Viewport) PanBy(dxScreen, dyScreen float64) {
	v.panX += dxScreen / v.zoom
	v.panY += dyScreen / v.zoom
}

// Reset returns the pan offset to the origin. Zoom is left unchanged.
func (v *Viewport) Reset() {
	v.panX, v.panY = 0, 0
}

// FitToView chooses the zoom that makes a bounding box of boundsW x
// boundsH world units fully visible inside a viewport of viewW x viewH
// screen units, capped at 1.0 so the content is never upscaled past
// 100%. The result is clamped into the zoom bounds and pan resets to the
// origin. A degenerate bounding box (zero or negative extent) fits at
// 1:1 instead of dividing by zero.
func (v *Viewport) FitToView(viewW, viewH, boundsW, boundsH float64) {
	zoom := 1.0
	if boundsW > 0 && boundsH > 0 {
		zoom = min(viewW/boundsW, viewH/boundsH, 1.0)
	}
	v.SetZoom(zoom)
	v.panX, v.panY = 0, 0
}

// Apply maps a world coordinate to screen coordinates under the current
// transform: scale by zoom, then translate by pan (pan in world units).
func (v *Viewport) Apply(wx, wy float64) (sx, sy float64) {
	return (wx + v.panX) * v.zoom, (wy + v.panY) * v.zoom
}

// Transform returns the raw (zoom, panX, panY) triple for renderers that
// build their own transform, such as an SVG transform attribute. The
// contract is scale-then-translate; applying the steps in the other
// order makes pan speed depend on zoom.
func (v *Viewport) Transform() (zoom, panX, panY float64) {
	return v.zoom, v.panX, v.panY
}

func (v *Viewport) clamp(zoom float64) float64 {
	if zoom < v.zoomMin {
		return v.zoomMin
	}
	if zoom > v.zoomMax {
		return v.zoomMax
	}
	return zoom
}
