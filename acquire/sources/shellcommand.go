package sources

import (
	"context"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/internal/status"
	"geoengine/progress"
)

// ShellCommand runs an arbitrary command (composed by the caller, e.g. an
// ssh/curl pipeline) and feeds its stdout through the converter, per
// AcquireOptions::import_with_shell_command.
type ShellCommand struct {
	Name        string
	Command     string
	InputFormat string
	BashPath    string
	Runner      babel.Runner
}

func (s *ShellCommand) ID() string                   { return "shell:" + s.Name }
func (s *ShellCommand) Title() string                { return s.Name }
func (s *ShellCommand) Autoview() bool               { return true }
func (s *ShellCommand) InputType() acquire.InputType { return acquire.InputNone }

func (s *ShellCommand) AcquireIntoLayer(ctx context.Context, acqCtx *acquire.Context, sink progress.Sink) *status.Status {
	opts := acquire.NewShellCommandOptions(s.Command, s.InputFormat)
	if s.BashPath != "" {
		opts.BashPath = s.BashPath
	}
	return opts.Import(ctx, s.Runner, acqCtx.TargetTRW, sink)
}
