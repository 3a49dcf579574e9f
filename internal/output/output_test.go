package output

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pavletto/reliefgrid/internal/grid"
)

func levelsGrid() *grid.Grid[int] {
	g := grid.New(2, 3, 0)
	for i, v := range []int{0, 1, 2, 9, 10, 255} {
		g.Set(i/3, i%3, v)
	}
	return g
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, levelsGrid()); err != nil {
		t.Fatalf("EncodeCSV error: %v", err)
	}
	want := "0,1,2\n9,10,255\n"
	if buf.String() != want {
		t.Errorf("EncodeCSV = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elevation.csv")
	if err := WriteCSV(path, levelsGrid()); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "0,1,2\n9,10,255\n" {
		t.Errorf("file contents = %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the csv in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteCSV_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "elevation.csv")
	err := WriteCSV(path, levelsGrid())
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("WriteCSV error = %v, want ErrWrite", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after failure")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	points := grid.New(2, 3, orb.Point{})
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			points.Set(r, c, orb.Point{-121 + float64(c)*0.1, 46 - float64(r)*0.1})
		}
	}
	elevations := grid.Map(levelsGrid(), func(v int) int { return v * 100 })

	path := filepath.Join(t.TempDir(), "lattice.geojson")
	if err := WriteGeoJSON(path, points, elevations, levelsGrid()); err != nil {
		t.Fatalf("WriteGeoJSON error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("written file is not GeoJSON: %v", err)
	}
	if len(fc.Features) != 6 {
		t.Fatalf("features = %d, want 6", len(fc.Features))
	}
	last := fc.Features[5]
	if p, ok := last.Geometry.(orb.Point); !ok || p != points.At(1, 2) {
		t.Errorf("last feature geometry = %v, want %v", last.Geometry, points.At(1, 2))
	}
	if last.Properties.MustInt("level") != 255 || last.Properties.MustInt("elevation") != 25500 {
		t.Errorf("last feature properties = %v", last.Properties)
	}
}

func TestWriteGeoJSON_ShapeMismatch(t *testing.T) {
	points := grid.New(1, 1, orb.Point{})
	err := WriteGeoJSON(filepath.Join(t.TempDir(), "x.geojson"), points, levelsGrid(), levelsGrid())
	if !errors.Is(err, ErrWrite) {
		t.Errorf("error = %v, want ErrWrite", err)
	}
}

func TestWritePreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePreview(path, levelsGrid(), 255, 300); err != nil {
		t.Fatalf("WritePreview error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("preview size = %dx%d, want 300x200", b.Dx(), b.Dy())
	}
}

func TestPreviewImage_Unscaled(t *testing.T) {
	img, err := PreviewImage(levelsGrid(), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
	// levels above maxLevel clamp to white
	if r, _, _, _ := img.At(2, 1).RGBA(); r != 0xffff {
		t.Errorf("clamped pixel = %x, want white", r)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Errorf("level 0 pixel = %x, want black", r)
	}
}

func TestNewPublisher_MissingSettings(t *testing.T) {
	if _, err := NewPublisher(PublisherConfig{Endpoint: "localhost:9000"}); err == nil {
		t.Error("NewPublisher without credentials should fail")
	}
}

func TestPublisherConfigFromEnv(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "access")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("MINIO_USE_SSL", "true")
	cfg := PublisherConfigFromEnv()
	if cfg.Endpoint != "localhost:9000" || !cfg.UseSSL || cfg.AccessKey != "access" {
		t.Errorf("PublisherConfigFromEnv = %+v", cfg)
	}
	if _, err := NewPublisher(cfg); err != nil {
		t.Errorf("NewPublisher error: %v", err)
	}
}
