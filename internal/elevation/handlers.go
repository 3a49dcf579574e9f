package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/pavletto/reliefgrid/internal/output"
)

// HeightResponse is the JSON body of HandleHeight
type HeightResponse struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Height int     `json:"height"`
	Units  string  `json:"units"`
}

type Server struct {
	Provider Provider
	Units    geo.Units

	// Timeout bounds a single request; zero means no extra deadline.
	Timeout time.Duration
}

func (s *Server) context(r *http.Request) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(r.Context(), s.Timeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) HandleHeight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		http.Error(w, "invalid lat", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		http.Error(w, "invalid lon", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.context(r)
	defer cancel()

	result, err := PickHeight(ctx, s.Provider, HeightRequest{Lat: lat, Lon: lon})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := HeightResponse{
		Lat:    result.Lat,
		Lon:    result.Lon,
		Height: result.Height,
		Units:  s.Units.ElevationLabel(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleRelief runs the whole pipeline and answers with the level CSV.
// Query: center, radius, levels, gridsize.
func (s *Server) HandleRelief(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	center, err := geo.ParseCenter(q.Get("center"))
	if err != nil {
		http.Error(w, "invalid center: "+err.Error(), http.StatusBadRequest)
		return
	}
	radius, err := strconv.ParseFloat(q.Get("radius"), 64)
	if err != nil {
		http.Error(w, "invalid radius", http.StatusBadRequest)
		return
	}
	levels, err := strconv.Atoi(q.Get("levels"))
	if err != nil {
		http.Error(w, "invalid levels", http.StatusBadRequest)
		return
	}
	gridSize, err := strconv.Atoi(q.Get("gridsize"))
	if err != nil {
		http.Error(w, "invalid gridsize", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.context(r)
	defer cancel()

	result, err := BuildRelief(ctx, s.Provider, ReliefRequest{
		Center:   center,
		Radius:   radius,
		Levels:   levels,
		GridSize: gridSize,
		Units:    s.Units,
	}, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := output.EncodeCSV(w, result.Levels); err != nil {
		log.Printf("writing relief response: %v", err)
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case IsInputError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case IsProviderError(err), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
