package acquire

import (
	"geoengine/layer"
	"geoengine/track"
	"geoengine/viewport"
)

// Context carries the external collaborators and the current target for
// one acquisition, replacing the source's global g_acquire_context/
// g_bfilters singletons with an explicit value passed down the call chain.
type Context struct {
	Viewport viewport.Viewport
	Layer    layer.Tree

	// TargetTRW is the container the acquisition writes into. Set by
	// configureTargetLayer before the worker runs.
	TargetTRW *track.TRW

	// TargetAllocated records whether TargetTRW was freshly created for
	// this acquisition (true) or is a pre-existing, user-selected layer
	// (false); it governs which finalize path frees it on failure.
	TargetAllocated bool

	// FilterTrack is the optional track a "filter with selected track"
	// source (§4.I) operates against. It is held per-invocation here
	// rather than as process-wide state. When it is nil the filter
	// sources work on TargetTRW instead, and fail with InternalError only
	// if that is nil too; whether the track has since been removed from
	// its TRW is not checked.
	FilterTrack *track.Track
}

// NewContext builds a Context for one acquisition against the given
// collaborators. The layer currently selected in tree is looked up later,
// by the worker, for the AddToLayer/ManualLayerManagement modes.
func NewContext(vp viewport.Viewport, tree layer.Tree) *Context {
	return &Context{Viewport: vp, Layer: tree}
}
