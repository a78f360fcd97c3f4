package sources

import (
	"context"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/internal/status"
	"geoengine/progress"
)

// ExternalConverter runs a preconfigured converter invocation directly —
// e.g. reading from a GPS device driver rather than a file — with output
// forced to GPX, per AcquireOptions::Mode::FromExternalConverter.
type ExternalConverter struct {
	Name   string
	Spec   babel.ConvertSpec
	Runner babel.Runner
}

func (s *ExternalConverter) ID() string                   { return "converter:" + s.Name }
func (s *ExternalConverter) Title() string                { return s.Name }
func (s *ExternalConverter) Autoview() bool                { return true }
func (s *ExternalConverter) InputType() acquire.InputType { return acquire.InputNone }

func (s *ExternalConverter) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	opts := acquire.NewConverterOptions(s.Spec)
	return opts.Import(ctx, s.Runner, acqCtx.TargetTRW, sink)
}
