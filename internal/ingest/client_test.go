package ingest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_FetchRecords(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"api-key": q.Get("api-key"),
			"format":  q.Get("format"),
			"limit":   q.Get("limit"),
			"offset":  q.Get("offset"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"records": [
				{
					"district_name": "Varanasi",
					"state_name": "Uttar Pradesh",
					"district_code": "UP67",
					"Total_Individuals_Worked": "145000",
					"Wages": "230000000.5",
					"Total_Households_Worked": "98000",
					"Average_days_of_employment_provided_per_Household": "42.7",
					"Number_of_Completed_Works": "1200"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	records, err := client.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Varanasi", records[0].DistrictName)
	assert.Equal(t, "Uttar Pradesh", records[0].StateName)
	assert.Equal(t, "145000", records[0].TotalWorkers)

	assert.Equal(t, "test-key", gotQuery["api-key"])
	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "5000", gotQuery["limit"])
	assert.Equal(t, "0", gotQuery["offset"])
}

func TestClient_FetchRecords_EmptySnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	_, err := client.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no records")
}

func TestClient_FetchRecords_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", 5*time.Second, testLogger())

	_, err := client.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClient_FetchRecords_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	_, err := client.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
