package transparency

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	scraper "adtransparency-backend/lib/scrapers/transparency"

	"github.com/stretchr/testify/require"
)

func setupMux(t *testing.T, fake *fakeScraper) *http.ServeMux {
	svc := setupService(t, fake, time.Hour)
	mux := http.NewServeMux()
	RegisterHandlers(mux, svc)
	return mux
}

func TestPingHandler(t *testing.T) {
	mux := setupMux(t, &fakeScraper{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body PingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, Version, body.Version)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
}

func TestScrapeHandler(t *testing.T) {
	count := 7
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "AR555777", nil
		},
		videoFn: func(id string) (scraper.VideoStats, error) {
			return scraper.VideoStats{HasVideos: true, Count: count}, nil
		},
	}
	mux := setupMux(t, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"advertiser_name": "Acme Corp"}`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the wire field names are part of the contract
	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Equal(t, "AR555777", raw["advertiser_google_id"])
	require.Equal(t, true, raw["has_videos"])
	require.Equal(t, float64(count), raw["video_count"])
}

func TestScrapeHandlerEmptyName(t *testing.T) {
	mux := setupMux(t, &fakeScraper{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"advertiser_name": "   "}`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Advertiser name cannot be empty", body.Detail)
}

func TestScrapeHandlerInvalidBody(t *testing.T) {
	mux := setupMux(t, &fakeScraper{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"advertiser_name":`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrapeHandlerNotFound(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "", scraper.ErrNoAdvertiser
		},
	}
	mux := setupMux(t, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"advertiser_name": "ghost brand"}`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body.Detail, "ghost brand")
}

func TestScrapeHandlerScraperError(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	mux := setupMux(t, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scrape", strings.NewReader(`{"advertiser_name": "timeout inc"}`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body.Detail, "Error during scraping")
}
