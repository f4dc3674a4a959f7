package transparency

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
)

type PingResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type AdvertiserRequest struct {
	AdvertiserName string `json:"advertiser_name"`
}

type AdvertiserResponse struct {
	AdvertiserGoogleID string `json:"advertiser_google_id"`
	HasVideos          bool   `json:"has_videos"`
	VideoCount         *int   `json:"video_count"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RegisterHandlers mounts the REST surface on a mux.
func RegisterHandlers(mux *http.ServeMux, svc Service) {
	mux.HandleFunc("GET /ping", handlePing)
	mux.HandleFunc("POST /scrape", svc.handleScrape)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
	})
}

func (s Service) handleScrape(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "http:Scrape")
	defer span.End()

	var req AdvertiserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		span.SetStatus(codes.Error, "bad request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.AdvertiserName)
	if name == "" {
		span.SetStatus(codes.Error, "empty advertiser name")
		writeError(w, http.StatusBadRequest, "Advertiser name cannot be empty")
		return
	}

	result, err := s.Lookup(ctx, name)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No advertiser ID found for '%s'", name))
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		slog.ErrorContext(ctx, "scrape failed", "advertiser", name, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error during scraping: %s", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, AdvertiserResponse{
		AdvertiserGoogleID: result.AdvertiserID,
		HasVideos:          result.HasVideos,
		VideoCount:         result.VideoCount,
	})
}
