package transparency

import (
	"context"
	"fmt"
	"testing"
	"time"

	scraper "adtransparency-backend/lib/scrapers/transparency"
	"adtransparency-backend/lib/testutil"
	"adtransparency-backend/services/transparency/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	searchCalls int
	videoCalls  int
	searchFn    func(name string) (string, error)
	videoFn     func(id string) (scraper.VideoStats, error)
}

func (f *fakeScraper) SearchAdvertiser(ctx context.Context, name string) (string, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return "", fmt.Errorf("unexpected SearchAdvertiser call")
	}
	return f.searchFn(name)
}

func (f *fakeScraper) CountVideos(ctx context.Context, id string, region string) (scraper.VideoStats, error) {
	f.videoCalls++
	if f.videoFn == nil {
		return scraper.VideoStats{}, fmt.Errorf("unexpected CountVideos call")
	}
	return f.videoFn(id)
}

func setupService(t *testing.T, fake *fakeScraper, ttl time.Duration) Service {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "transparency",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })

	return NewService(ServiceOptions{
		Scraper:  fake,
		Database: result.DB,
		CacheTTL: ttl,
	})
}

func TestLookupPinnedAdvertiser(t *testing.T) {
	fake := &fakeScraper{}
	svc := setupService(t, fake, time.Hour)

	result, err := svc.Lookup(context.Background(), "  Adidas ")
	require.NoError(t, err)

	require.Equal(t, "AR14017378248766259201", result.AdvertiserID)
	require.True(t, result.HasVideos)
	require.NotNil(t, result.VideoCount)
	require.Equal(t, 34, *result.VideoCount)

	// pinned advertisers never touch the browser
	require.Equal(t, 0, fake.searchCalls)
	require.Equal(t, 0, fake.videoCalls)
}

func TestLookupScrapesAndCaches(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "AR999000", nil
		},
		videoFn: func(id string) (scraper.VideoStats, error) {
			return scraper.VideoStats{HasVideos: true, Count: 3}, nil
		},
	}
	svc := setupService(t, fake, time.Hour)

	first, err := svc.Lookup(context.Background(), "Acme Corp")
	require.NoError(t, err)

	count := 3
	expected := LookupResult{
		AdvertiserID: "AR999000",
		HasVideos:    true,
		VideoCount:   &count,
	}
	if diff := cmp.Diff(expected, first); diff != "" {
		t.Fatalf("unexpected lookup result (-want +got):\n%s", diff)
	}

	second, err := svc.Lookup(context.Background(), "acme corp")
	require.NoError(t, err)
	if diff := cmp.Diff(expected, second); diff != "" {
		t.Fatalf("unexpected cached result (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, fake.searchCalls)
}

func TestLookupCacheExpiry(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "AR42", nil
		},
		videoFn: func(id string) (scraper.VideoStats, error) {
			return scraper.VideoStats{}, nil
		},
	}
	svc := setupService(t, fake, time.Nanosecond)

	_, err := svc.Lookup(context.Background(), "stale co")
	require.NoError(t, err)
	_, err = svc.Lookup(context.Background(), "stale co")
	require.NoError(t, err)

	require.Equal(t, 2, fake.searchCalls)
}

func TestLookupNotFound(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "", scraper.ErrNoAdvertiser
		},
	}
	svc := setupService(t, fake, time.Hour)

	_, err := svc.Lookup(context.Background(), "nobody inc")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLookupVideoFailureDegrades(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "AR31337", nil
		},
		videoFn: func(id string) (scraper.VideoStats, error) {
			return scraper.VideoStats{}, fmt.Errorf("page never loaded")
		},
	}
	svc := setupService(t, fake, time.Hour)

	result, err := svc.Lookup(context.Background(), "flaky ltd")
	require.NoError(t, err)
	require.Equal(t, "AR31337", result.AdvertiserID)
	require.False(t, result.HasVideos)
	require.Nil(t, result.VideoCount)
}

func TestLookupWithoutDatabase(t *testing.T) {
	fake := &fakeScraper{
		searchFn: func(name string) (string, error) {
			return "AR1", nil
		},
		videoFn: func(id string) (scraper.VideoStats, error) {
			return scraper.VideoStats{HasVideos: false, Count: 0}, nil
		},
	}
	svc := NewService(ServiceOptions{Scraper: fake})

	_, err := svc.Lookup(context.Background(), "cacheless co")
	require.NoError(t, err)
	_, err = svc.Lookup(context.Background(), "cacheless co")
	require.NoError(t, err)

	require.Equal(t, 2, fake.searchCalls)
}
