package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pavletto/reliefgrid/internal/geo"
)

// DefaultBaseURL is the USGS Elevation Point Query Service endpoint.
const DefaultBaseURL = "https://epqs.nationalmap.gov/v1/json"

// EPQS answers points it has no data for with this value.
const noDataValue = -1000000

const coverageNote = "Note: elevation data only supported in Canada, Mexico, and USA."

// Provider returns the elevation of one point, truncated to an integer, in
// whatever unit the provider was configured with.
type Provider interface {
	Elevation(ctx context.Context, lat, lon float64) (int, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, lat, lon float64) (int, error)

func (f ProviderFunc) Elevation(ctx context.Context, lat, lon float64) (int, error) {
	return f(ctx, lat, lon)
}

type ClientConfig struct {
	BaseURL           string // DefaultBaseURL when empty
	Units             geo.Units
	HTTPClientTimeout time.Duration
	UserAgent         string

	// HTTPClient overrides the client built from HTTPClientTimeout.
	HTTPClient *http.Client
}

// Client queries the USGS Elevation Point Query Service, one request per
// point, with no retries.
type Client struct {
	cfg  ClientConfig
	base *url.URL
	http *http.Client
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: bad elevation endpoint %q", ErrInvalidRequest, cfg.BaseURL)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "reliefgrid/1.0"
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.HTTPClientTimeout}
	}
	return &Client{cfg: cfg, base: base, http: hc}, nil
}

func (c *Client) Config() ClientConfig { return c.cfg }

func (c *Client) requestURL(lat, lon float64) string {
	params := url.Values{}
	params.Set("x", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("wkid", "4326")
	params.Set("units", c.cfg.Units.ProviderUnit())
	params.Set("includeDate", "false")

	u := *c.base
	u.RawQuery = params.Encode()
	return u.String()
}

// Elevation fetches the elevation at lat/lon and truncates it toward zero.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (int, error) {
	reqURL := c.requestURL(lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: error getting response from %s: %v", ErrTransport, c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode), URL: reqURL}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("%w: reading response from %s: %v", ErrTransport, c.cfg.BaseURL, err)
	}
	return decodeElevation(raw, reqURL)
}

// pointResponse is the part of the EPQS JSON body we use.
type pointResponse struct {
	Value *pointValue `json:"value"`
}

// pointValue accepts the elevation either as a JSON number or as a numeric
// string; the service has returned both.
type pointValue float64

func (v *pointValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("elevation value %s is not a number", b)
	}
	*v = pointValue(f)
	return nil
}

func decodeElevation(raw []byte, reqURL string) (int, error) {
	var pr pointResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return 0, fmt.Errorf("%w: json response error from %s: %v. Text: '%s'. %s",
			ErrDecode, reqURL, err, snippet(raw), coverageNote)
	}
	if pr.Value == nil {
		return 0, fmt.Errorf("%w: no elevation value from %s. Text: '%s'. %s",
			ErrDecode, reqURL, snippet(raw), coverageNote)
	}
	f := float64(*pr.Value)
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: elevation %v out of range from %s. %s", ErrDecode, f, reqURL, coverageNote)
	}
	if f <= noDataValue {
		return 0, fmt.Errorf("%w: no data at %s. %s", ErrDecode, reqURL, coverageNote)
	}
	return int(f), nil
}

func snippet(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
