package main

import (
	"context"
	"fmt"

	"github.com/pavletto/reliefgrid/internal/elevation"
	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/spf13/cobra"
)

func newHeightCmd() *cobra.Command {
	heightCmd := &cobra.Command{
		Use:   "height",
		Short: "Get terrain elevation at a location",
		Long: `Get terrain elevation at a specific geographic coordinate from the
elevation service.

Examples:
  reliefgrid height --lat 46.85167 --lon -121.76028
  reliefgrid height --lat 46.85167 --lon -121.76028 --units imperial`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")

			cfg, err := LoadConfig(cmd)
			if err != nil {
				return fmt.Errorf("bad input: %w", err)
			}
			client, err := cfg.CreateClient()
			if err != nil {
				return classify(err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			result, err := elevation.PickHeight(ctx, client, elevation.HeightRequest{Lat: lat, Lon: lon})
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Location: %s\n", geo.FormatLatLon(result.Lat, result.Lon))
			fmt.Fprintf(out, "Elevation: %d %s\n", result.Height, cfg.Units.ElevationLabel())
			return nil
		},
	}

	heightCmd.Flags().Float64("lat", 0, "Latitude (required)")
	heightCmd.Flags().Float64("lon", 0, "Longitude (required)")
	_ = heightCmd.MarkFlagRequired("lat")
	_ = heightCmd.MarkFlagRequired("lon")
	return heightCmd
}
