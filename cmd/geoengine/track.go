package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"geoengine/acquire"
	"geoengine/acquire/babel"
	"geoengine/coords"
	"geoengine/internal/status"
	"geoengine/progress"
	"geoengine/track"
)

func trackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Inspect track data",
	}

	statsCmd := &cobra.Command{
		Use:   "stats <gpxfile>",
		Short: "Load a GPX file and print length/duration/speed/elevation stats for each track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackStats(args[0])
		},
	}

	cmd.AddCommand(statsCmd)
	return cmd
}

func runTrackStats(path string) error {
	dst := track.NewTRW(path, coords.ModeLatLon)
	opts := acquire.NewLocalFileOptions(path, "")
	if st := opts.Import(context.Background(), babel.Runner{}, dst, progress.Discard); !status.IsOK(st) {
		return fmt.Errorf("load %s: %w", path, st)
	}

	if len(dst.Tracks) == 0 {
		fmt.Println("no tracks found")
		return nil
	}

	for _, t := range dst.TracksByTimestamp() {
		printTrackStats(t)
	}
	return nil
}

func printTrackStats(t *track.Track) {
	kind := "track"
	if t.IsRoute {
		kind = "route"
	}
	fmt.Printf("%s %q (%d points, %d segment(s))\n", kind, t.Name, len(t.Points), t.SegmentCount())
	fmt.Printf("  length:       %.1f m\n", t.Length())
	fmt.Printf("  duration:     %s\n", t.Duration(true))
	fmt.Printf("  avg speed:    %.2f m/s\n", t.AverageSpeed())
	if up, down, ok := t.TotalElevationGain(); ok {
		fmt.Printf("  elev gain/loss: +%.0f m / -%.0f m\n", up, down)
	} else {
		fmt.Printf("  elev gain/loss: no elevation data\n")
	}
}
