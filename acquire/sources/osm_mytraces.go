package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	gpx "github.com/tkrajina/gpxgo/gpx"
	"golang.org/x/time/rate"

	"geoengine/acquire"
	"geoengine/internal/logging"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

const defaultOSMAPIBase = "http://api.openstreetmap.org"

// OSMMyTraces lists the authenticated user's uploaded GPS traces and
// acquires each selected one into its own TRW layer, per §6's "listing,
// XML" / "…/gpx/<id>/data" endpoints. It creates and attaches layers
// itself, so it is always driven with ManualLayerManagement.
type OSMMyTraces struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter // shared throttle for the listing + per-trace fetches
	TraceIDs   []string      // traces selected by the external config dialog / CLI prompt

	// APIBase overrides the OSM API origin, for tests; empty means the
	// real api.openstreetmap.org.
	APIBase string
}

func (s *OSMMyTraces) apiBase() string {
	if s.APIBase != "" {
		return s.APIBase
	}
	return defaultOSMAPIBase
}

type osmGpxFiles struct {
	XMLName xml.Name  `xml:"osm"`
	Files   []osmGpxFile `xml:"gpx_file"`
}

type osmGpxFile struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

func (s *OSMMyTraces) ID() string                   { return "osm_my_traces" }
func (s *OSMMyTraces) Title() string                { return "OSM My Traces" }
func (s *OSMMyTraces) Autoview() bool               { return true }
func (s *OSMMyTraces) InputType() acquire.InputType { return acquire.InputNone }

func (s *OSMMyTraces) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

// ListTraces fetches the user's trace list, to be shown by the external
// config dialog / CLI prompt so the user can pick which to import.
func (s *OSMMyTraces) ListTraces(ctx context.Context) ([]osmGpxFile, *status.Status) {
	if err := s.wait(ctx); err != nil {
		return nil, status.Wrap(status.Cancelled, "rate limit wait", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase()+"/api/0.6/user/gpx_files", nil)
	if err != nil {
		return nil, status.Wrap(status.Error, "build traces list request", err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, status.Wrap(status.Error, "fetch traces list", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, status.Wrap(status.Error, "read traces list", err)
	}

	var parsed osmGpxFiles
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, status.Wrap(status.Error, "parse traces list XML", err)
	}
	return parsed.Files, status.Ok()
}

// AcquireIntoLayer downloads every trace in TraceIDs and attaches one
// fresh TRW per trace directly to the tree, matching the source's own
// "create one TRW per selected trace" behavior.
func (s *OSMMyTraces) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	log := logging.For("osm_my_traces")

	for _, id := range s.TraceIDs {
		if ctx.Err() != nil {
			return status.Wrap(status.Cancelled, "osm my traces acquisition cancelled", ctx.Err())
		}
		if err := s.wait(ctx); err != nil {
			return status.Wrap(status.Cancelled, "rate limit wait", err)
		}

		url := fmt.Sprintf("%s/api/0.6/gpx/%s/data", s.apiBase(), id)
		if sink != nil {
			sink.Status("fetching trace " + id)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return status.Wrap(status.Error, "build trace request", err)
		}
		resp, err := s.client().Do(req)
		if err != nil {
			log.Warn().Err(err).Str("trace_id", id).Msg("fetch trace failed, skipping")
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Warn().Err(err).Str("trace_id", id).Msg("read trace body failed, skipping")
			continue
		}

		parsed, err := gpx.ParseBytes(body)
		if err != nil {
			log.Warn().Err(err).Str("trace_id", id).Msg("parse trace GPX failed, skipping")
			continue
		}

		trw := track.NewTRW("trace "+id, acqCtx.Viewport.CoordMode())
		acquire.MergeGPX(parsed, trw)
		if err := acqCtx.Layer.Attach(trw); err != nil {
			log.Warn().Err(err).Str("trace_id", id).Msg("attach trace layer failed")
		}
	}
	return status.Ok()
}

func (s *OSMMyTraces) wait(ctx context.Context) error {
	if s.Limiter == nil {
		return nil
	}
	return s.Limiter.Wait(ctx)
}
