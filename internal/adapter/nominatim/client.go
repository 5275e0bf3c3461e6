// Package nominatim implements domain.Geocoder against the OSM Nominatim
// reverse-geocoding API. It is the only code that knows the provider's field
// names; everything downstream sees the fixed LocationGuess shape.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/observability"
)

// Client implements domain.Geocoder using the Nominatim API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim reverse-geocoding client. Nominatim's usage
// policy rejects anonymous traffic, so userAgent must identify the caller.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		metrics:    metrics,
		logger:     logger,
	}
}

var trailingDistrict = regexp.MustCompile(`(?i)\s+district$`)

// ReverseGeocode converts a coordinate to a district-level location guess.
// A zero guess with a nil error means the provider had no usable answer
// (no district-level name or no state in the response).
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (domain.LocationGuess, error) {
	params := url.Values{
		"lat":             {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":             {strconv.FormatFloat(lng, 'f', -1, 64)},
		"format":          {"json"},
		"addressdetails":  {"1"},
		"zoom":            {"8"}, // district-level granularity
		"accept-language": {"en"},
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.LocationGuess{}, err
	}

	district := resp.Address.districtName()
	state := resp.Address.State
	if district == "" || state == "" {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("nominatim response had no district-level result",
			"lat", lat, "lng", lng)
		return domain.LocationGuess{}, nil
	}

	district = trailingDistrict.ReplaceAllString(district, "")

	formatted := resp.DisplayName
	if formatted == "" {
		formatted = fmt.Sprintf("%s, %s, India", district, state)
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return domain.LocationGuess{
		District:         district,
		State:            state,
		FormattedAddress: formatted,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var nr response
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &nr, nil
}

// Nominatim API response types.

type response struct {
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	StateDistrict string `json:"state_district"`
	County        string `json:"county"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
	Village       string `json:"village"`
	State         string `json:"state"`
}

// districtName picks the district-level name from the address components.
// Nominatim populates different fields depending on the place class, so the
// fields are tried from most to least district-like; the first non-empty wins.
func (a address) districtName() string {
	for _, candidate := range []string{a.StateDistrict, a.County, a.City, a.Town, a.Municipality, a.Village} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
