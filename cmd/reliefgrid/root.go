package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pavletto/reliefgrid/internal/elevation"
	"github.com/pavletto/reliefgrid/internal/env"
	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/pavletto/reliefgrid/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const exampleText = `Example: (Mount Rainier)

  $ reliefgrid --center "46°51′6 N 121°45′37 W" --radius 7 --levels 9 --gridsize 32

Elevation levels are written to 'elevation.csv'.`

// newRootCmd builds the command tree. The root command itself fetches the
// elevation grid and writes the level table.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reliefgrid",
		Short: "Fetch elevation data for building a layered 3D relief map",
		Long: `Reliefgrid samples an N x N grid of elevations around a center point from the
USGS Elevation Point Query Service and quantizes them into a small number of
levels, one per stacked layer of bricks.

The center accepts these notations:
    "46° 51' 6 N 121° 45' 37 W"
    "N 46° 51' 6, W 121° 45' 37"
    "46° 51.1' N 121° 58.6167' W"
    "46.86167° N, 121.76028° W"
    "46.86167 N 121.76028 W"

Elevation data is only available for the USA, Canada and Mexico.
Configuration can be set via environment variables (RELIEF_*), a .env file,
or command-line flags.`,
		Example:       exampleText,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env may set RELIEF_VERBOSE, so it is loaded before logging is configured.
			log.SetOutput(io.Discard)
			env.Load()
			if verboseEnabled(cmd) {
				log.SetOutput(cmd.ErrOrStderr())
			}
		},
		RunE: runRelief,
	}

	// Global flags
	rootCmd.PersistentFlags().String("endpoint", elevation.DefaultBaseURL, "Elevation Point Query Service URL")
	rootCmd.PersistentFlags().StringP("units", "u", "metric", "Unit system: metric (km, meters) or imperial (mi, feet)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "HTTP timeout per elevation request")
	rootCmd.PersistentFlags().String("user-agent", "reliefgrid/1.0", "User-Agent sent to the elevation service")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every sample instead of showing a progress bar")

	f := rootCmd.Flags()
	f.StringP("center", "c", "", "Center of the map, latitude/longitude")
	f.Float64P("radius", "r", 0, fmt.Sprintf("Map radius from the center in km (mi with --units imperial), 1..%d", elevation.MaxRadius))
	f.IntP("levels", "l", 0, fmt.Sprintf("Number of elevation levels, 1..%d", elevation.MaxLevels))
	f.IntP("gridsize", "g", 0, fmt.Sprintf("Number of columns and rows, 1..%d", elevation.MaxGridSize))
	f.StringP("output", "o", "elevation.csv", "Path of the level CSV")
	f.String("geojson", "", "Also write the sampled lattice as GeoJSON to this path")
	f.String("preview", "", "Also write a greyscale PNG preview of the levels to this path")
	f.Int("preview-size", 512, "Width of the preview image in pixels")
	f.String("publish-bucket", "", "Upload the outputs to this S3/MinIO bucket (MINIO_* settings)")
	f.String("publish-prefix", "relief", "Object key prefix for uploaded outputs")

	rootCmd.AddCommand(newHeightCmd(), newServeCmd())
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

type reliefOptions struct {
	center        string
	radius        float64
	levels        int
	gridSize      int
	output        string
	geoJSON       string
	preview       string
	previewSize   int
	publishBucket string
	publishPrefix string
}

func loadReliefOptions(cmd *cobra.Command) reliefOptions {
	return reliefOptions{
		center:        getConfigString(cmd, "center", "RELIEF_CENTER", ""),
		radius:        getConfigFloat(cmd, "radius", "RELIEF_RADIUS", 0),
		levels:        getConfigInt(cmd, "levels", "RELIEF_LEVELS", 0),
		gridSize:      getConfigInt(cmd, "gridsize", "RELIEF_GRIDSIZE", 0),
		output:        getConfigString(cmd, "output", "RELIEF_OUTPUT", "elevation.csv"),
		geoJSON:       getConfigString(cmd, "geojson", "RELIEF_GEOJSON", ""),
		preview:       getConfigString(cmd, "preview", "RELIEF_PREVIEW", ""),
		previewSize:   getConfigInt(cmd, "preview-size", "RELIEF_PREVIEW_SIZE", 512),
		publishBucket: getConfigString(cmd, "publish-bucket", "RELIEF_PUBLISH_BUCKET", ""),
		publishPrefix: getConfigString(cmd, "publish-prefix", "RELIEF_PUBLISH_PREFIX", "relief"),
	}
}

func runRelief(cmd *cobra.Command, args []string) error {
	opts := loadReliefOptions(cmd)
	if opts.center == "" {
		_ = cmd.Help()
		return fmt.Errorf("bad input: --center is required")
	}

	cfg, err := LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("bad input: %w", err)
	}
	center, err := geo.ParseCenter(opts.center)
	if err != nil {
		return classify(err)
	}
	req := elevation.ReliefRequest{
		Center:   center,
		Radius:   opts.radius,
		Levels:   opts.levels,
		GridSize: opts.gridSize,
		Units:    cfg.Units,
	}
	if err := req.Validate(); err != nil {
		return classify(err)
	}
	if opts.previewSize < 0 {
		return fmt.Errorf("bad input: preview-size must not be negative")
	}

	client, err := cfg.CreateClient()
	if err != nil {
		return classify(err)
	}
	var publisher *output.Publisher
	if opts.publishBucket != "" {
		publisher, err = output.NewPublisher(output.PublisherConfigFromEnv())
		if err != nil {
			return fmt.Errorf("bad input: %w", err)
		}
	}

	log.Printf("Sampling %dx%d grid around %s, radius %v %s",
		req.GridSize, req.GridSize, geo.FormatLatLon(center.Lat(), center.Lon()), req.Radius, cfg.Units.DistanceLabel())

	bar := newProgressBar(cmd.ErrOrStderr(), req.GridSize*req.GridSize, !cfg.Verbose)
	ctx := cmd.Context()
	result, err := elevation.BuildRelief(ctx, client, req, func(elevation.Sample) {
		_ = bar.Add(1)
	})
	if err != nil {
		_ = bar.Exit()
		return classify(err)
	}
	_ = bar.Finish()

	written, err := writeOutputs(opts, req, result)
	if err != nil {
		return classify(err)
	}
	if publisher != nil {
		for _, w := range written {
			key := filepath.ToSlash(filepath.Join(opts.publishPrefix, filepath.Base(w.path)))
			if err := publisher.Publish(ctx, opts.publishBucket, key, w.path, w.contentType); err != nil {
				return fmt.Errorf("publish failure: %w", err)
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Elevation levels (0..%d) written to '%s'\n", req.Levels, opts.output)
	return nil
}

type writtenFile struct {
	path        string
	contentType string
}

// writeOutputs writes the optional extras first and the CSV last. When any
// write fails, the files already written by this run are removed.
func writeOutputs(opts reliefOptions, req elevation.ReliefRequest, result elevation.ReliefResult) (written []writtenFile, err error) {
	defer func() {
		if err != nil {
			for _, w := range written {
				if rmErr := os.Remove(w.path); rmErr != nil {
					log.Printf("removing %s: %v", w.path, rmErr)
				}
			}
			written = nil
		}
	}()

	if opts.geoJSON != "" {
		points := elevation.Points(result.Samples)
		if err := output.WriteGeoJSON(opts.geoJSON, points, elevation.Elevations(result.Samples), result.Levels); err != nil {
			return written, err
		}
		written = append(written, writtenFile{opts.geoJSON, "application/geo+json"})
	}
	if opts.preview != "" {
		if err := output.WritePreview(opts.preview, result.Levels, req.Levels, uint(opts.previewSize)); err != nil {
			return written, err
		}
		written = append(written, writtenFile{opts.preview, "image/png"})
	}
	if err := output.WriteCSV(opts.output, result.Levels); err != nil {
		return written, err
	}
	return append(written, writtenFile{opts.output, "text/csv"}), nil
}

func newProgressBar(w io.Writer, total int, visible bool) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionSetDescription("sampling"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// classify prefixes err with the kind of failure the user is looking at.
func classify(err error) error {
	switch {
	case elevation.IsInputError(err):
		return fmt.Errorf("bad input: %w", err)
	case elevation.IsProviderError(err):
		return fmt.Errorf("elevation service failure: %w", err)
	case errors.Is(err, output.ErrWrite):
		return fmt.Errorf("write failure: %w", err)
	}
	return err
}
