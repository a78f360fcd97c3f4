package sources

import (
	"context"
	"net/url"
	"path"
	"strings"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/internal/status"
	"geoengine/progress"
)

// URL acquires by downloading a URL and optionally running it through the
// converter, per AcquireOptions::import_from_url.
type URL struct {
	Source      string
	InputFormat string
	Download    *acquire.DownloadOptions
	Runner      babel.Runner
}

func (s *URL) ID() string                   { return "url:" + s.Source }
func (s *URL) Autoview() bool               { return true }
func (s *URL) InputType() acquire.InputType { return acquire.InputNone }

func (s *URL) Title() string {
	if u, err := url.Parse(s.Source); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return strings.TrimPrefix(s.Source, "https://")
}

func (s *URL) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	opts := acquire.NewURLOptions(s.Source, s.InputFormat)
	if s.Download != nil {
		opts.Download = s.Download
	}
	return opts.Import(ctx, s.Runner, acqCtx.TargetTRW, sink)
}
