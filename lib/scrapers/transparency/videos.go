package transparency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/codes"
)

// VideoStats describes the video ads found on an advertiser's page.
type VideoStats struct {
	HasVideos bool
	Count     int
}

// CountVideos loads an advertiser's VIDEO format page and counts video
// indicators through the in-page heuristic script.
func (b *Browser) CountVideos(ctx context.Context, advertiserID string, region string) (VideoStats, error) {
	ctx, span := tracer.Start(ctx, "browser:CountVideos")
	defer span.End()

	sctx, cancel := b.newSession(ctx)
	defer cancel()

	url := fmt.Sprintf("%sadvertiser/%s?region=%s&format=VIDEO", BaseURL, advertiserID, region)
	err := b.navigate(sctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load video page")
		return VideoStats{}, fmt.Errorf("failed to load video page: %w", err)
	}
	b.screenshot(sctx, fmt.Sprintf("%s_video_page", advertiserID))

	wctx, cancelWait := context.WithTimeout(sctx, b.opts.WaitTimeout)
	defer cancelWait()

	var count int
	err = chromedp.Run(wctx, chromedp.Evaluate(videoCountScript, &count))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "video count script failed")
		return VideoStats{}, fmt.Errorf("video count script failed: %w", err)
	}
	b.screenshot(sctx, fmt.Sprintf("%s_video_detection", advertiserID))

	slog.InfoContext(ctx, "counted video indicators", "advertiser_id", advertiserID, "count", count)
	return VideoStats{
		HasVideos: count > 0,
		Count:     count,
	}, nil
}
