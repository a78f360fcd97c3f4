// Package babel spawns GPSBabel (or a raw shell pipeline) as a child
// process and streams its stdout into a GPX parser, the Go equivalent of
// BabelConverter/BabelProcess in babel.cpp: a QProcess whose
// readyReadStandardOutput signal fed a line-oriented callback becomes a
// read of the process's stdout pipe (stderr is forwarded to the progress
// sink from a separate goroutine), decoded with the real GPX library the
// teacher's go.mod declared but never imported.
package babel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	humanize "github.com/dustin/go-humanize"
	gpx "github.com/tkrajina/gpxgo/gpx"

	"geoengine/internal/logging"
	"geoengine/internal/status"
	"geoengine/progress"
)

// Runner resolves and invokes the external converter binary. Program is
// usually the gpsbabel path; Unbuffer, when non-empty, is prepended as the
// real program with Program becoming its first argument, mirroring
// Babel::set_program_name's "defeat stdio buffering" trick.
type Runner struct {
	Program  string
	Unbuffer string
}

// commandLine returns the program to exec and the argument list, with the
// unbuffer wrapper applied if configured.
func (r Runner) commandLine(args []string) (string, []string) {
	if r.Unbuffer == "" {
		return r.Program, args
	}
	return r.Unbuffer, append([]string{r.Program}, args...)
}

// ConvertSpec describes one GPSBabel invocation. Its argv always ends
// with "-o gpx -F -": the runner only ever produces a GPX stream on stdout
// for the caller to parse, per §4.F/§4.G.
type ConvertSpec struct {
	InputFormat string
	InputFile   string // "-" to read from stdin, a path, or a device name
	Filters     []string
}

func (s ConvertSpec) argv() []string {
	args := make([]string, 0, 8+len(s.Filters))
	if s.InputFormat != "" {
		args = append(args, "-i", s.InputFormat)
	}
	args = append(args, "-f", s.InputFile)
	args = append(args, s.Filters...)
	args = append(args, "-o", "gpx", "-F", "-")
	return args
}

// RunGPX runs GPSBabel per spec and parses its stdout as GPX. Stderr lines
// are reported to sink as progress status; a non-zero exit or GPX parse
// failure yields status.Error wrapping the underlying cause.
func (r Runner) RunGPX(ctx context.Context, spec ConvertSpec, sink progress.Sink) (*gpx.GPX, *status.Status) {
	program, args := r.commandLine(spec.argv())
	return runGPX(ctx, program, args, sink)
}

// RunShellPipeline runs an arbitrary, already-composed shell pipeline (the
// FromShellCommand mode in §4.F, where the command itself is "the
// program") and parses its stdout as GPX.
func RunShellPipeline(ctx context.Context, shellPath, pipeline string, sink progress.Sink) (*gpx.GPX, *status.Status) {
	return runGPX(ctx, shellPath, []string{"-c", pipeline}, sink)
}

func runGPX(ctx context.Context, program string, args []string, sink progress.Sink) (*gpx.GPX, *status.Status) {
	log := logging.For("babel")
	log.Debug().Str("program", program).Strs("args", args).Msg("starting converter")

	cmd := exec.CommandContext(ctx, program, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, status.Wrap(status.InternalError, "attach stdout pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, status.Wrap(status.InternalError, "attach stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, status.Wrap(status.Error, "start converter process", err)
	}

	go streamProgress(stderr, sink)

	var out bytes.Buffer
	if _, err := io.Copy(&out, stdout); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Msg("reading converter stdout")
	}

	waitErr := cmd.Wait()
	if sink != nil {
		sink.Status(fmt.Sprintf("%s exited, %s read", program, humanize.Bytes(uint64(out.Len()))))
	}

	if ctx.Err() != nil {
		return nil, status.Wrap(status.Cancelled, "converter cancelled", ctx.Err())
	}
	if waitErr != nil {
		return nil, status.Wrap(status.Error, "converter process failed", waitErr)
	}

	parsed, err := gpx.ParseBytes(out.Bytes())
	if err != nil {
		return nil, status.Wrap(status.Error, "parse converter GPX output", err)
	}
	return parsed, status.Ok()
}

// streamProgress forwards the child's stderr, line by line, to sink as
// status updates. GPSBabel writes its diagnostic chatter here; its "-^3"
// feature-enumeration lines go to stdout and are read by
// Registry.Features instead.
func streamProgress(r io.Reader, sink progress.Sink) {
	if sink == nil {
		io.Copy(io.Discard, r)
		return
	}
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 512)
	for {
		n, err := r.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
			for {
				i := bytes.IndexByte(buf, '\n')
				if i < 0 {
					break
				}
				line := string(bytes.TrimRight(buf[:i], "\r"))
				if line != "" {
					sink.Status(line)
				}
				buf = buf[i+1:]
			}
		}
		if err != nil {
			return
		}
	}
}
