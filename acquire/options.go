package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	validator "github.com/go-playground/validator/v10"
	shellquote "github.com/kballard/go-shellquote"
	gpx "github.com/tkrajina/gpxgo/gpx"

	"geoengine/acquire/babel"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

// Mode selects which of the four ways AcquireOptions knows how to produce
// a GPX stream is in effect, mirroring AcquireOptions::Mode in acquire.cpp.
type Mode int

const (
	FromLocalFile Mode = iota
	FromURL
	FromShellCommand
	FromExternalConverter
)

func (m Mode) String() string {
	switch m {
	case FromLocalFile:
		return "from_local_file"
	case FromURL:
		return "from_url"
	case FromShellCommand:
		return "from_shell_command"
	case FromExternalConverter:
		return "from_external_converter"
	default:
		return "unknown"
	}
}

// DownloadOptions configures the FromURL fetch: redirect limit and
// optional HTTP basic credentials, per §6's download handle.
type DownloadOptions struct {
	MaxRedirects  int
	BasicAuthUser string
	BasicAuthPass string
}

// DefaultDownloadOptions mirrors the source's DownloadOptions(2) default
// used when AcquireOptions.Download is nil.
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{MaxRedirects: 2}
}

var validate = validator.New()

// Options is the declarative description of how to obtain data, dispatched
// by Mode. Only the fields relevant to the active mode need be set; the
// struct tags check that each mode's required field is present, and the
// other fields are not validated.
type Options struct {
	Mode Mode

	// FromLocalFile
	Path string `validate:"required_if=Mode 0"`

	// FromURL
	URL      string `validate:"required_if=Mode 1"`
	Download *DownloadOptions

	// FromShellCommand
	ShellCommand string `validate:"required_if=Mode 2"`
	BashPath     string

	// FromExternalConverter
	Converter babel.ConvertSpec

	// Used by FromLocalFile, FromURL and FromShellCommand
	// (FromExternalConverter takes its format from Converter.InputFormat):
	// when set, the input is run through GPSBabel with this format; when
	// empty, the input must already be GPX.
	InputDataFormat string
}

// NewLocalFileOptions returns Options for parsing path directly (as GPX if
// inputFormat is empty, or through the converter otherwise).
func NewLocalFileOptions(path, inputFormat string) *Options {
	return &Options{Mode: FromLocalFile, Path: path, InputDataFormat: inputFormat}
}

// NewURLOptions returns Options for fetching url (optionally through the
// converter).
func NewURLOptions(url, inputFormat string) *Options {
	return &Options{Mode: FromURL, URL: url, InputDataFormat: inputFormat, Download: DefaultDownloadOptions()}
}

// NewShellCommandOptions returns Options for piping shellCommand's stdout
// through the converter (or taking it as GPX directly).
func NewShellCommandOptions(shellCommand, inputFormat string) *Options {
	return &Options{Mode: FromShellCommand, ShellCommand: shellCommand, InputDataFormat: inputFormat, BashPath: "/bin/bash"}
}

// NewConverterOptions returns Options that run a preconfigured converter
// invocation (device read, or any already-assembled ConvertSpec).
func NewConverterOptions(spec babel.ConvertSpec) *Options {
	return &Options{Mode: FromExternalConverter, Converter: spec}
}

// Import dispatches o against runner, merging the resulting GPX content
// into dst and reporting progress to sink. It is the single entry point
// every acquire source and the acquire worker (§4.H) call.
func (o *Options) Import(ctx context.Context, runner babel.Runner, dst *track.TRW, sink progress.Sink) *status.Status {
	if err := validate.Struct(o); err != nil {
		return status.Wrap(status.InternalError, "invalid acquire options", err)
	}

	switch o.Mode {
	case FromLocalFile:
		return o.importLocalFile(ctx, runner, dst, sink)
	case FromURL:
		return o.importFromURL(ctx, runner, dst, sink)
	case FromShellCommand:
		return o.importFromShellCommand(ctx, runner, dst, sink)
	case FromExternalConverter:
		return o.importFromConverter(ctx, runner, dst, sink)
	default:
		return status.New(status.InternalError, fmt.Sprintf("unexpected acquire mode %d", o.Mode))
	}
}

func (o *Options) importLocalFile(ctx context.Context, runner babel.Runner, dst *track.TRW, sink progress.Sink) *status.Status {
	if o.InputDataFormat == "" {
		return parseGPXFile(o.Path, dst)
	}
	g, st := runner.RunGPX(ctx, babel.ConvertSpec{InputFormat: o.InputDataFormat, InputFile: o.Path}, sink)
	if !status.IsOK(st) {
		return st
	}
	MergeGPX(g, dst)
	return status.Ok()
}

func (o *Options) importFromURL(ctx context.Context, runner babel.Runner, dst *track.TRW, sink progress.Sink) *status.Status {
	dl := o.Download
	if dl == nil {
		dl = DefaultDownloadOptions()
	}

	tmp, err := os.CreateTemp("", "tmp-geoengine.*")
	if err != nil {
		return status.Wrap(status.IntermediateFileAccess, "create temporary file", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if st := downloadToFile(ctx, o.URL, tmpPath, dl, sink); !status.IsOK(st) {
		return st
	}

	if o.InputDataFormat != "" {
		g, st := runner.RunGPX(ctx, babel.ConvertSpec{InputFormat: o.InputDataFormat, InputFile: tmpPath}, sink)
		if !status.IsOK(st) {
			return st
		}
		MergeGPX(g, dst)
		return status.Ok()
	}

	if mt, err := mimetype.DetectFile(tmpPath); err == nil && !looksLikeGPX(mt) {
		return status.New(status.Error, fmt.Sprintf("fetched content is %s, not GPX", mt.String()))
	}
	return parseGPXFile(tmpPath, dst)
}

func (o *Options) importFromShellCommand(ctx context.Context, runner babel.Runner, dst *track.TRW, sink progress.Sink) *status.Status {
	bash := o.BashPath
	if bash == "" {
		bash = "/bin/bash"
	}

	pipeline := o.ShellCommand
	if o.InputDataFormat != "" {
		converterArgv := []string{runner.Program, "-i", o.InputDataFormat, "-f", "-", "-o", "gpx", "-F", "-"}
		pipeline = pipeline + " | " + shellquote.Join(converterArgv...)
	}

	g, st := babel.RunShellPipeline(ctx, bash, pipeline, sink)
	if !status.IsOK(st) {
		return st
	}
	MergeGPX(g, dst)
	return status.Ok()
}

func (o *Options) importFromConverter(ctx context.Context, runner babel.Runner, dst *track.TRW, sink progress.Sink) *status.Status {
	g, st := runner.RunGPX(ctx, o.Converter, sink)
	if !status.IsOK(st) {
		return st
	}
	MergeGPX(g, dst)
	return status.Ok()
}

func parseGPXFile(path string, dst *track.TRW) *status.Status {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return status.Wrap(status.FileAccess, "parse GPX file "+path, err)
	}
	MergeGPX(g, dst)
	return status.Ok()
}

func looksLikeGPX(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/xml") || m.Is("application/xml") {
			return true
		}
	}
	return false
}

func downloadToFile(ctx context.Context, url, destPath string, dl *DownloadOptions, sink progress.Sink) *status.Status {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > dl.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
		Timeout: 60 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return status.Wrap(status.Error, "build request for "+url, err)
	}
	if dl.BasicAuthUser != "" {
		req.SetBasicAuth(dl.BasicAuthUser, dl.BasicAuthPass)
	}

	if sink != nil {
		sink.Status("fetching " + url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return status.Wrap(status.Error, "fetch "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status.New(status.Error, fmt.Sprintf("fetch %s: HTTP %d", url, resp.StatusCode))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return status.Wrap(status.IntermediateFileAccess, "create "+destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return status.Wrap(status.Error, "write downloaded content", err)
	}
	return status.Ok()
}
