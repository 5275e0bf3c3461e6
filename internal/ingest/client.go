// Package ingest fetches the national employment statistics resource and
// refreshes the district catalog from it, on a schedule or on demand.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// APIRecord is one row of the statistics resource. The upstream API types
// every numeric field as a string; parsing happens in the transform step.
type APIRecord struct {
	DistrictName     string `json:"district_name"`
	StateName        string `json:"state_name"`
	DistrictCode     string `json:"district_code"`
	TotalWorkers     string `json:"Total_Individuals_Worked"`
	Wages            string `json:"Wages"`
	TotalHouseholds  string `json:"Total_Households_Worked"`
	AvgDaysPerFamily string `json:"Average_days_of_employment_provided_per_Household"`
	CompletedWorks   string `json:"Number_of_Completed_Works"`
	BudgetUtilized   string `json:"budget_utilized"`
	FinancialYear    string `json:"financial_year"`
	Month            string `json:"month"`
}

// fetchLimit is the row cap per fetch; the resource holds one row per
// district, well under this.
const fetchLimit = 5000

// Client fetches records from the data.gov.in statistics resource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a statistics API client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchRecords retrieves the full statistics snapshot. An empty snapshot is
// an error: replacing the catalog with nothing is never what a sync wants.
func (c *Client) FetchRecords(ctx context.Context) ([]APIRecord, error) {
	params := url.Values{
		"api-key": {c.apiKey},
		"format":  {"json"},
		"limit":   {fmt.Sprint(fetchLimit)},
		"offset":  {"0"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch statistics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("statistics API error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Records []APIRecord `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(payload.Records) == 0 {
		return nil, errors.New("statistics API returned no records")
	}

	c.logger.Debug("statistics fetched", "records", len(payload.Records))
	return payload.Records, nil
}
