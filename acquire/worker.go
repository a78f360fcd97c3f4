package acquire

import (
	"context"
	"fmt"
	"sync"

	"geoengine/internal/logging"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

// TargetMode selects how the worker obtains/creates the TRW container an
// acquisition writes into, mirroring DataSourceMode in acquire.cpp.
type TargetMode int

const (
	CreateNewLayer TargetMode = iota
	AddToLayer
	AutoLayerManagement
	ManualLayerManagement
)

// InputType is what a Source expects to already be attached to, used when
// exposing it as a right-click "filter" on existing data rather than as a
// fresh acquisition.
type InputType int

const (
	InputNone InputType = iota
	InputTRWLayer
	InputTRWLayerTrack
)

// Source is the common interface every concrete acquisition (local file,
// URL, device, OSM-My-Traces, Wikipedia-geobox, filter) implements,
// generalizing DataSource's four operations named in §9's re-architecture
// notes.
type Source interface {
	// ID uniquely identifies the source for menu/filter dispatch.
	ID() string
	// Title names the fresh TRW layer a CreateNewLayer acquisition
	// allocates.
	Title() string
	// Autoview reports whether a successful acquisition should ask the
	// viewport to recenter on the new content.
	Autoview() bool
	// InputType is what this source expects to operate on when invoked
	// as a filter rather than a fresh acquisition.
	InputType() InputType
	// AcquireIntoLayer does the actual work, writing into
	// acqCtx.TargetTRW. Apart from sources run with
	// ManualLayerManagement (such as OSM My Traces), which attach their
	// own layers, it must not touch the layer tree directly; attachment
	// happens only after it returns successfully.
	AcquireIntoLayer(ctx context.Context, acqCtx *Context, sink progress.Sink) *status.Status
}

// Worker runs one acquisition at a time. There is at most one acquisition
// active per Worker instance — mu is the process-wide single-flight lock
// named in §4.H/§5 — so a single long-lived Worker should be shared by
// every caller in a process, the way the source's AcquireWorker relied on
// QThreadPool to serialize runs.
type Worker struct {
	mu sync.Mutex
}

func NewWorker() *Worker { return &Worker{} }

// Run configures the target layer, invokes source on the calling
// goroutine (callers that want this off the foreground thread should call
// Run from their own goroutine), and finalizes by either attaching the
// result to the tree or discarding a freshly-allocated target. ctx
// cancellation propagates into source.AcquireIntoLayer; the worker itself
// does not poll beyond observing the non-Success result.
func (w *Worker) Run(ctx context.Context, source Source, mode TargetMode, acqCtx *Context, sink progress.Sink) *status.Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.For("acquire")

	if st := w.configureTargetLayer(mode, acqCtx, source); !status.IsOK(st) {
		return st
	}

	log.Info().Str("source", source.ID()).Msg("acquire starting")
	result := source.AcquireIntoLayer(ctx, acqCtx, sink)
	log.Info().Str("source", source.ID()).Str("result", result.Kind.String()).Msg("acquire finished")

	if status.IsOK(result) {
		w.finalizeAfterCompletion(acqCtx, source)
		if sink != nil {
			sink.Completed(true)
		}
	} else {
		w.finalizeAfterTermination(acqCtx)
		if sink != nil {
			sink.Completed(false)
		}
	}
	return result
}

func (w *Worker) configureTargetLayer(mode TargetMode, acqCtx *Context, source Source) *status.Status {
	switch mode {
	case CreateNewLayer:
		acqCtx.TargetAllocated = true

	case AddToLayer:
		sel := acqCtx.Layer.Selected()
		if sel == nil {
			return status.New(status.InternalError, "AddToLayer requires an existing selected TRW layer")
		}
		acqCtx.TargetTRW = sel
		acqCtx.TargetAllocated = false

	case AutoLayerManagement:
		// No-op: the source manages target layers itself.

	case ManualLayerManagement:
		acqCtx.TargetAllocated = false
		sel := acqCtx.Layer.Selected()
		if sel == nil {
			return status.New(status.InternalError, "ManualLayerManagement requires an existing selected TRW layer")
		}
		acqCtx.TargetTRW = sel

	default:
		return status.New(status.InternalError, fmt.Sprintf("unexpected target mode %d", mode))
	}

	if acqCtx.TargetAllocated {
		acqCtx.TargetTRW = track.NewTRW(source.Title(), acqCtx.Viewport.CoordMode())
	}
	return status.Ok()
}

// finalizeAfterCompletion runs after AcquireIntoLayer returns a nominal
// result. A freshly-allocated target that ended up empty is discarded
// silently rather than attached; otherwise the target is attached in one
// burst and, if the source wants it, the viewport is asked to show it.
func (w *Worker) finalizeAfterCompletion(acqCtx *Context, source Source) {
	if acqCtx.TargetTRW == nil {
		return
	}

	if acqCtx.TargetAllocated && len(acqCtx.TargetTRW.Tracks) == 0 && len(acqCtx.TargetTRW.Waypoints) == 0 {
		acqCtx.TargetTRW = nil
		return
	}

	if err := acqCtx.Layer.Attach(acqCtx.TargetTRW); err != nil {
		logging.For("acquire").Warn().Err(err).Msg("attach acquired layer")
		return
	}
	if source.Autoview() {
		acqCtx.Viewport.ShowBBox(acqCtx.TargetTRW.Bounds())
	}
}

// finalizeAfterTermination runs after a cancelled or failed acquisition:
// a freshly-allocated target is dropped, leaving the tree untouched.
func (w *Worker) finalizeAfterTermination(acqCtx *Context) {
	if acqCtx.TargetAllocated {
		acqCtx.TargetTRW = nil
	}
}
