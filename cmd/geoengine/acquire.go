package main

import (
	"context"
	"fmt"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/acquire/sources"
	"geoengine/coords"
	"geoengine/internal/status"
	"geoengine/layer"
	"geoengine/progress"
	"geoengine/viewport"
)

const (
	filterNone       = "none"
	filterSimplify   = "simplify"
	filterCompress   = "compress"
	filterDuplicates = "duplicates"
)

func acquireCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acquire",
		Short: "Import GPS data into a new track layer",
	}

	var inputFormat string
	var filter string

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Import a local file, as GPX directly or through the converter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAcquire(&sources.LocalFile{
				Path:        args[0],
				InputFormat: inputFormat,
				Runner:      babelRunner(),
			}, filter)
		},
	}
	fileCmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "GPSBabel input format (empty: parse as GPX directly)")

	urlCmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Download a URL, as GPX directly or through the converter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAcquire(&sources.URL{
				Source:      args[0],
				InputFormat: inputFormat,
				Runner:      babelRunner(),
			}, filter)
		},
	}
	urlCmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "GPSBabel input format (empty: expect GPX content)")

	var bashPath string
	shellCmd := &cobra.Command{
		Use:   "shell <command>",
		Short: "Run a shell pipeline and import its stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := bashPath
			if shell == "" {
				shell = cfg.Babel.ShellPath
			}
			return runAcquire(&sources.ShellCommand{
				Name:        "shell acquisition",
				Command:     args[0],
				InputFormat: inputFormat,
				BashPath:    shell,
				Runner:      babelRunner(),
			}, filter)
		},
	}
	shellCmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "GPSBabel input format (empty: expect GPX on stdout)")
	shellCmd.Flags().StringVar(&bashPath, "shell", "", "shell binary to run the command with (default from config)")

	converterCmd := &cobra.Command{
		Use:   "converter <argv...>",
		Short: "Run a preconfigured GPSBabel invocation (e.g. a device read)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAcquire(&sources.ExternalConverter{
				Name: "converter acquisition",
				Spec: babel.ConvertSpec{
					InputFormat: inputFormat,
					InputFile:   args[0],
					Filters:     args[1:],
				},
				Runner: babelRunner(),
			}, filter)
		},
	}
	converterCmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "GPSBabel input format")

	for _, sub := range []*cobra.Command{fileCmd, urlCmd, shellCmd, converterCmd} {
		sub.Flags().StringVar(&filter, "filter", "", "post-acquire filter: none|simplify|compress|duplicates (prompted if omitted and interactive)")
	}

	cmd.AddCommand(fileCmd, urlCmd, shellCmd, converterCmd)
	return cmd
}

func babelRunner() babel.Runner {
	return babel.Runner{Program: cfg.Babel.Path, Unbuffer: cfg.Babel.UnbufferPath}
}

// runAcquire drives one acquisition through the worker against an
// in-memory layer tree, prints progress in color, then optionally applies
// a post-acquire filter to the resulting TRW before summarizing it.
func runAcquire(source acquire.Source, filter string) error {
	ctx := context.Background()
	tree := layer.NewInMemory(nil)
	acqCtx := acquire.NewContext(&viewport.Static{Mode: coords.ModeLatLon}, tree)
	sink := newColorSink()

	worker := acquire.NewWorker()
	result := worker.Run(ctx, source, acquire.CreateNewLayer, acqCtx, sink)
	if !status.IsOK(result) {
		return fmt.Errorf("acquire: %w", result)
	}
	if len(tree.Attached) == 0 {
		fmt.Println("acquired no data")
		return nil
	}
	trw := tree.Attached[len(tree.Attached)-1]

	chosen, err := resolveFilter(filter)
	if err != nil {
		return err
	}
	if chosen != filterNone {
		filterCtx := acquire.NewContext(acqCtx.Viewport, tree)
		filterCtx.TargetTRW = trw
		if st := applyFilter(ctx, chosen, filterCtx, sink); !status.IsOK(st) {
			return fmt.Errorf("filter: %w", st)
		}
	}

	fmt.Printf("layer %q: %d track(s), %d waypoint(s)\n", trw.Name, len(trw.Tracks), len(trw.Waypoints))
	return nil
}

// resolveFilter returns the filter the user asked for via --filter, or
// prompts interactively with survey when the flag was left unset and the
// command is attached to a terminal, standing in for the GUI's bfilter
// menu (§4.I).
func resolveFilter(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !isInteractive() {
		return filterNone, nil
	}

	answer := filterNone
	prompt := &survey.Select{
		Message: "Apply a filter to the acquired data?",
		Options: []string{filterNone, filterSimplify, filterCompress, filterDuplicates},
		Default: filterNone,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return filterNone, fmt.Errorf("filter prompt: %w", err)
	}
	return answer, nil
}

// applyFilter dispatches to one of the built-in bfilter sources (§4.I),
// running it directly against the already-acquired TRW rather than
// through the worker, since there is no fresh target to allocate here.
func applyFilter(ctx context.Context, name string, filterCtx *acquire.Context, sink progress.Sink) *status.Status {
	var src acquire.Source
	switch name {
	case filterSimplify:
		src = &sources.Simplify{Epsilon: 10}
	case filterCompress:
		src = &sources.Compress{MinDistance: 10}
	case filterDuplicates:
		src = &sources.Duplicates{}
	default:
		return status.New(status.InternalError, fmt.Sprintf("unknown filter %q", name))
	}
	return src.AcquireIntoLayer(ctx, filterCtx, sink)
}
