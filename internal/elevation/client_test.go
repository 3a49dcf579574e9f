package elevation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pavletto/reliefgrid/internal/geo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, units geo.Units) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(ClientConfig{BaseURL: server.URL + "/v1/json", Units: units, HTTPClientTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestClient_Elevation(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr error
	}{
		{name: "numeric value", status: 200, body: `{"location":{},"value":4392.87}`, want: 4392},
		{name: "string value", status: 200, body: `{"value":"1234.9"}`, want: 1234},
		{name: "negative truncates toward zero", status: 200, body: `{"value":"-85.7"}`, want: -85},
		{name: "not found status", status: 404, body: `not found`, wantErr: ErrStatus},
		{name: "server error status", status: 503, body: ``, wantErr: ErrStatus},
		{name: "not json", status: 200, body: `<html>oops</html>`, wantErr: ErrDecode},
		{name: "missing value", status: 200, body: `{"location":{}}`, wantErr: ErrDecode},
		{name: "null value", status: 200, body: `{"value":null}`, wantErr: ErrDecode},
		{name: "non-numeric string", status: 200, body: `{"value":"n/a"}`, wantErr: ErrDecode},
		{name: "no data sentinel", status: 200, body: `{"value":-1000000}`, wantErr: ErrDecode},
		{name: "NaN string", status: 200, body: `{"value":"NaN"}`, wantErr: ErrDecode},
		{name: "infinity string", status: 200, body: `{"value":"Infinity"}`, wantErr: ErrDecode},
		{name: "negative infinity string", status: 200, body: `{"value":"-Inf"}`, wantErr: ErrDecode},
		{name: "beyond int range", status: 200, body: `{"value":1e300}`, wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, geo.Metric)

			got, err := c.Elevation(context.Background(), 46.85, -121.76)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Elevation() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Elevation() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Elevation() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClient_DecodeErrorMentionsCoverage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":"garbage"}`))
	}, geo.Metric)
	_, err := c.Elevation(context.Background(), 48.85, 2.35)
	if err == nil || !strings.Contains(err.Error(), "Canada, Mexico, and USA") {
		t.Errorf("error %v should mention provider coverage", err)
	}
}

func TestClient_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, geo.Metric)
	_, err := c.Elevation(context.Background(), 46.85, -121.76)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if se.Code != 503 || se.Status != "Service Unavailable" {
		t.Errorf("StatusError = %+v", se)
	}
	if !IsProviderError(err) || IsInputError(err) {
		t.Errorf("503 should classify as provider error")
	}
}

func TestClient_QueryParameters(t *testing.T) {
	tests := []struct {
		units geo.Units
		want  string
	}{
		{geo.Metric, "Meters"},
		{geo.Imperial, "Feet"},
	}
	for _, tt := range tests {
		t.Run(tt.units.String(), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if r.URL.Path != "/v1/json" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if q.Get("x") != "-121.76028" || q.Get("y") != "46.86167" {
					t.Errorf("x/y = %s/%s", q.Get("x"), q.Get("y"))
				}
				if q.Get("wkid") != "4326" {
					t.Errorf("wkid = %s", q.Get("wkid"))
				}
				if q.Get("units") != tt.want {
					t.Errorf("units = %s, want %s", q.Get("units"), tt.want)
				}
				if r.Header.Get("Accept") != "application/json" {
					t.Errorf("Accept = %s", r.Header.Get("Accept"))
				}
				_, _ = w.Write([]byte(`{"value":1}`))
			}, tt.units)
			if _, err := c.Elevation(context.Background(), 46.86167, -121.76028); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(ClientConfig{BaseURL: url, HTTPClientTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Elevation(context.Background(), 46.85, -121.76)
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(ClientConfig{})
	if err != nil {
		t.Fatalf("NewClient with defaults: %v", err)
	}
	if c.Config().BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", c.Config().BaseURL, DefaultBaseURL)
	}
	if _, err := NewClient(ClientConfig{BaseURL: "not a url"}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("bad BaseURL error = %v", err)
	}
}
