package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"geoengine/coords"
	"geoengine/dem"
	"geoengine/dem/cache"
)

func demCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dem",
		Short: "Inspect DEM (elevation grid) files",
	}

	infoCmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print a DEM file's format, extent and scale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDEMInfo(args[0])
		},
	}

	var method string
	elevCmd := &cobra.Command{
		Use:   "elev <path> <lat> <lon>",
		Short: "Look up the elevation at a lat/lon in a DEM file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[1], err)
			}
			lon, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[2], err)
			}
			return runDEMElev(args[0], lat, lon, method)
		},
	}
	elevCmd.Flags().StringVar(&method, "method", "best", "interpolation method: simple|best|none")

	cmd.AddCommand(infoCmd, elevCmd)
	return cmd
}

func runDEMInfo(path string) error {
	c := cache.New()
	grid, err := c.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer c.Unload(path)

	fmt.Printf("source:      %s\n", demSourceName(grid.Source))
	fmt.Printf("horiz units: %s\n", demHorizUnitsName(grid.HorizUnits))
	fmt.Printf("scale:       %gx%g\n", grid.Scale.X, grid.Scale.Y)
	fmt.Printf("extent:      east [%g, %g], north [%g, %g]\n", grid.MinEast, grid.MaxEast, grid.MinNorth, grid.MaxNorth)
	if grid.HorizUnits == dem.UTMMeters {
		fmt.Printf("utm zone:    %d%c\n", grid.UTMZone, grid.UTMBand)
	}
	fmt.Printf("columns:     %d\n", len(grid.Columns))
	return nil
}

func runDEMElev(path string, lat, lon float64, methodFlag string) error {
	method, err := parseInterpolation(methodFlag)
	if err != nil {
		return err
	}

	c := cache.New()
	grid, err := c.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer c.Unload(path)

	coord := coords.FromLatLon(coords.LatLon{Lat: lat, Lon: lon})
	elev, ok := grid.ElevAtCoord(coord, method)
	if !ok || elev == dem.InvalidElevation {
		fmt.Println("no data at that point")
		return nil
	}
	fmt.Printf("%d m\n", elev)
	return nil
}

func parseInterpolation(s string) (dem.Interpolation, error) {
	switch s {
	case "simple":
		return dem.Simple, nil
	case "best":
		return dem.Best, nil
	case "none":
		return dem.NoInterpolation, nil
	default:
		return dem.NoInterpolation, fmt.Errorf("unknown interpolation method %q (want simple|best|none)", s)
	}
}

func demSourceName(s dem.Source) string {
	switch s {
	case dem.SourceSRTM:
		return "SRTM"
	case dem.SourceUSGS24K:
		return "USGS 24K"
	default:
		return "unknown"
	}
}

func demHorizUnitsName(h dem.HorizUnits) string {
	if h == dem.UTMMeters {
		return "UTM meters"
	}
	return "lat/lon arcseconds"
}
