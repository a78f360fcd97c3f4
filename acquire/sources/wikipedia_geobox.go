package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"geoengine/acquire"
	"geoengine/coords"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

const defaultWikipediaGeoboxURL = "http://api.geonames.org/wikipediaBoundingBoxJSON"

// WikipediaGeobox queries geonames.org's Wikipedia-articles-in-a-bounding-
// box endpoint (§6) and turns each result into a waypoint in the target
// TRW that the worker set up (CreateNewLayer or AddToLayer), one call per
// acquisition — a single layer, not per-item like OSM-My-Traces.
type WikipediaGeobox struct {
	Box        coords.BBox
	Lang       string
	MaxRows    int
	Username   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter

	// EndpointURL overrides the geonames endpoint, for tests; empty means
	// the real api.geonames.org URL.
	EndpointURL string
}

func (s *WikipediaGeobox) endpoint() string {
	if s.EndpointURL != "" {
		return s.EndpointURL
	}
	return defaultWikipediaGeoboxURL
}

type wikipediaGeoboxResponse struct {
	Geonames []struct {
		Title     string  `json:"title"`
		Summary   string  `json:"summary"`
		Lat       float64 `json:"lat"`
		Lng       float64 `json:"lng"`
		WikipediaURL string `json:"wikipediaUrl"`
	} `json:"geonames"`
}

func (s *WikipediaGeobox) ID() string                   { return "wikipedia_geobox" }
func (s *WikipediaGeobox) Title() string                { return "Wikipedia Articles" }
func (s *WikipediaGeobox) Autoview() bool               { return false }
func (s *WikipediaGeobox) InputType() acquire.InputType { return acquire.InputNone }

func (s *WikipediaGeobox) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *WikipediaGeobox) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return status.Wrap(status.Cancelled, "rate limit wait", err)
		}
	}

	maxRows := s.MaxRows
	if maxRows <= 0 {
		maxRows = 20
	}
	lang := s.Lang
	if lang == "" {
		lang = "en"
	}

	q := url.Values{}
	q.Set("formatted", "true")
	q.Set("north", fmt.Sprintf("%f", s.Box.North))
	q.Set("south", fmt.Sprintf("%f", s.Box.South))
	q.Set("east", fmt.Sprintf("%f", s.Box.East))
	q.Set("west", fmt.Sprintf("%f", s.Box.West))
	q.Set("lang", lang)
	q.Set("maxRows", fmt.Sprintf("%d", maxRows))
	q.Set("username", s.Username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return status.Wrap(status.Error, "build wikipedia geobox request", err)
	}

	if sink != nil {
		sink.Status("querying Wikipedia articles in bounding box")
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return status.Wrap(status.Error, "fetch wikipedia geobox", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return status.Wrap(status.Error, "read wikipedia geobox response", err)
	}

	var parsed wikipediaGeoboxResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return status.Wrap(status.Error, "parse wikipedia geobox JSON", err)
	}

	for _, entry := range parsed.Geonames {
		c := coords.FromLatLon(coords.LatLon{Lat: entry.Lat, Lon: entry.Lng})
		if acqCtx.TargetTRW.Mode == coords.ModeUTM {
			c = coords.FromUTM(coords.LatLonToUTM(c.LatLon))
		}
		w := track.NewWaypoint(c)
		w.Name = entry.Title
		w.Description = entry.Summary
		w.URL = entry.WikipediaURL
		acqCtx.TargetTRW.AddWaypoint(w)
	}

	return status.Ok()
}
