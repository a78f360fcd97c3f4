// Package sources implements the pluggable, concrete acquisitions named in
// component I: local file, URL, shell command, external converter,
// OSM-My-Traces, Wikipedia-geobox, and the built-in filter sources, all
// behind the acquire.Source interface.
package sources

import (
	"context"
	"path/filepath"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/internal/status"
	"geoengine/progress"
)

// LocalFile acquires from a path already on disk: GPX directly when
// InputFormat is empty, or through the converter otherwise.
type LocalFile struct {
	Path        string
	InputFormat string
	Runner      babel.Runner
}

func (s *LocalFile) ID() string                     { return "local_file:" + s.Path }
func (s *LocalFile) Title() string                  { return filepath.Base(s.Path) }
func (s *LocalFile) Autoview() bool                 { return true }
func (s *LocalFile) InputType() acquire.InputType   { return acquire.InputNone }

func (s *LocalFile) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	opts := acquire.NewLocalFileOptions(s.Path, s.InputFormat)
	return opts.Import(ctx, s.Runner, acqCtx.TargetTRW, sink)
}
