package transparency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	scraper "adtransparency-backend/lib/scrapers/transparency"
	"adtransparency-backend/lib/telemetry"
	"adtransparency-backend/services/transparency/db"

	"go.opentelemetry.io/otel/codes"
)

const Version = "1.0.0"

var tracer = telemetry.Tracer("services/transparency")

// ErrNotFound is returned when no advertiser id could be resolved for
// a name through any strategy.
var ErrNotFound = errors.New("no advertiser id found")

// Scraper resolves advertiser ids and video counts against the portal.
type Scraper interface {
	SearchAdvertiser(ctx context.Context, name string) (string, error)
	CountVideos(ctx context.Context, advertiserID string, region string) (scraper.VideoStats, error)
}

type Service struct {
	scraper  Scraper
	qry      *db.Queries
	region   string
	cacheTTL time.Duration
}

type ServiceOptions struct {
	Scraper Scraper
	// Database holds the lookup cache, nil disables caching.
	Database *sql.DB
	// Region scopes portal queries. Defaults to "US".
	Region string
	// CacheTTL bounds how long a cached lookup stays fresh.
	// Defaults to an hour.
	CacheTTL time.Duration
}

func NewService(opts ServiceOptions) Service {
	if opts.Scraper == nil {
		panic("nil scraper")
	}
	if opts.Region == "" {
		opts.Region = "US"
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	s := Service{
		scraper:  opts.Scraper,
		region:   opts.Region,
		cacheTTL: opts.CacheTTL,
	}
	if opts.Database != nil {
		s.qry = db.New(opts.Database)
	}
	return s
}

// LookupResult is the outcome of resolving one advertiser name.
type LookupResult struct {
	AdvertiserID string
	HasVideos    bool
	// VideoCount is nil when video detection failed outright.
	VideoCount *int
}

// Lookup resolves an advertiser name to its identifier and video-ad
// stats. Resolution order: pinned override table, lookup cache, then
// the browser-driven search.
func (s Service) Lookup(ctx context.Context, name string) (LookupResult, error) {
	ctx, span := tracer.Start(ctx, "service:Lookup")
	defer span.End()

	name = strings.TrimSpace(name)
	key := strings.ToLower(name)

	if id, ok := knownAdvertiserIDs[key]; ok {
		slog.InfoContext(ctx, "using pinned advertiser id", "advertiser", name, "id", id)
		hasVideos, videoCount := s.resolveVideos(ctx, id)
		return LookupResult{
			AdvertiserID: id,
			HasVideos:    hasVideos,
			VideoCount:   videoCount,
		}, nil
	}

	if cached, ok := s.getCachedLookup(ctx, key); ok {
		return cached, nil
	}

	id, err := s.scraper.SearchAdvertiser(ctx, name)
	if errors.Is(err, scraper.ErrNoAdvertiser) {
		span.SetStatus(codes.Error, "advertiser not found")
		return LookupResult{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return LookupResult{}, fmt.Errorf("search failed: %w", err)
	}

	hasVideos, videoCount := s.resolveVideos(ctx, id)
	result := LookupResult{
		AdvertiserID: id,
		HasVideos:    hasVideos,
		VideoCount:   videoCount,
	}
	s.cacheLookup(ctx, key, result)
	return result, nil
}

// resolveVideos checks the pinned count table before driving the
// browser. Detection failures degrade to "no videos" with an unknown
// count rather than failing the whole lookup.
func (s Service) resolveVideos(ctx context.Context, advertiserID string) (bool, *int) {
	if count, ok := knownVideoCounts[advertiserID]; ok {
		slog.InfoContext(ctx, "using pinned video count", "id", advertiserID, "count", count)
		return true, &count
	}

	stats, err := s.scraper.CountVideos(ctx, advertiserID, s.region)
	if err != nil {
		slog.WarnContext(ctx, "video detection failed", "id", advertiserID, "err", err)
		return false, nil
	}
	return stats.HasVideos, &stats.Count
}

func (s Service) getCachedLookup(ctx context.Context, key string) (LookupResult, bool) {
	if s.qry == nil {
		return LookupResult{}, false
	}

	row, err := s.qry.GetLookup(ctx, key)
	if err == sql.ErrNoRows {
		return LookupResult{}, false
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read lookup cache", "name", key, "err", err)
		return LookupResult{}, false
	}
	if time.Since(row.LastUpdated) > s.cacheTTL {
		return LookupResult{}, false
	}

	result := LookupResult{
		AdvertiserID: row.AdvertiserID,
		HasVideos:    row.HasVideos,
	}
	if row.VideoCount.Valid {
		count := int(row.VideoCount.Int64)
		result.VideoCount = &count
	}
	slog.DebugContext(ctx, "lookup cache hit", "name", key, "id", result.AdvertiserID)
	return result, true
}

func (s Service) cacheLookup(ctx context.Context, key string, result LookupResult) {
	if s.qry == nil {
		return
	}

	videoCount := sql.NullInt64{}
	if result.VideoCount != nil {
		videoCount = sql.NullInt64{Int64: int64(*result.VideoCount), Valid: true}
	}
	err := s.qry.UpsertLookup(ctx, db.UpsertLookupParams{
		Name:         key,
		AdvertiserID: result.AdvertiserID,
		HasVideos:    result.HasVideos,
		VideoCount:   videoCount,
		LastUpdated:  time.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to write lookup cache", "name", key, "err", err)
	}
}
