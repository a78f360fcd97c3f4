// Package viewport defines the read-only collaborator the acquire worker
// consults for the target layer's coordinate mode and asks to recenter
// when a freshly-acquired TRW wants to be shown. Rendering, panning and
// zooming live entirely outside this engine; this interface is the
// engine's only window onto them.
package viewport

import "geoengine/coords"

// Viewport is the external display surface. The core never draws to it;
// it only reads the current coordinate mode and, on request, asks it to
// reframe around a bounding box.
type Viewport interface {
	// CoordMode is the mode newly-created TRW containers should adopt.
	CoordMode() coords.Mode

	// Bounds is the currently visible geographic extent.
	Bounds() coords.BBox

	// ShowBBox asks the viewport to recenter and rescale so that b is
	// fully visible. Called after a successful acquire when the
	// source is marked "autoview".
	ShowBBox(b coords.BBox)
}

// Static is a fixed, non-interactive Viewport for CLI and test use: it
// reports a configured coordinate mode and stores the box passed to
// ShowBBox, which Bounds then returns.
type Static struct {
	Mode coords.Mode
	Box  coords.BBox
}

func (s *Static) CoordMode() coords.Mode { return s.Mode }
func (s *Static) Bounds() coords.BBox    { return s.Box }
func (s *Static) ShowBBox(b coords.BBox) {
	s.Box = b
}
