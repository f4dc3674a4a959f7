package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"adtransparency-backend/lib/configutil"
	scraper "adtransparency-backend/lib/scrapers/transparency"
	"adtransparency-backend/lib/serviceutil"
	"adtransparency-backend/services/transparency"
	"adtransparency-backend/services/transparency/db"

	_ "modernc.org/sqlite"
)

type ScraperConfig struct {
	Headful             bool   `json:"headful"`
	NavigationTimeoutMs int    `json:"navigation_timeout_ms"`
	WaitTimeoutMs       int    `json:"wait_timeout_ms"`
	ScreenshotDir       string `json:"screenshot_dir"`
	DevtoolsUrl         string `json:"devtools_url"`
}

type CacheConfig struct {
	// Path holds the sqlite database file, `:memory:` when empty.
	Path     string `json:"path"`
	TtlHours int    `json:"ttl_hours"`
}

type Config struct {
	Port    int           `json:"port"`
	Region  string        `json:"region"`
	Scraper ScraperConfig `json:"scraper"`
	Cache   CacheConfig   `json:"cache"`
}

func openCache(cfg CacheConfig) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		return nil, err
	}
	return database, nil
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if os.IsNotExist(err) {
		slog.WarnContext(ctx, "no config.json5 found, running on defaults")
	} else if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	cache, err := openCache(cfg.Cache)
	if err != nil {
		serviceutil.Fatal("open lookup cache", err)
	}
	defer cache.Close()

	browser := scraper.NewBrowser(scraper.BrowserOptions{
		Headful:           cfg.Scraper.Headful,
		NavigationTimeout: time.Duration(cfg.Scraper.NavigationTimeoutMs) * time.Millisecond,
		WaitTimeout:       time.Duration(cfg.Scraper.WaitTimeoutMs) * time.Millisecond,
		ScreenshotDir:     cfg.Scraper.ScreenshotDir,
		DevtoolsURL:       cfg.Scraper.DevtoolsUrl,
	})

	svc := transparency.NewService(transparency.ServiceOptions{
		Scraper:  browser,
		Database: cache,
		Region:   cfg.Region,
		CacheTTL: time.Duration(cfg.Cache.TtlHours) * time.Hour,
	})

	mux := http.NewServeMux()
	transparency.RegisterHandlers(mux, svc)

	go serviceutil.StartHttpServer(cfg.Port, serviceutil.LogRequests(mux))
	<-ctx.Done()
}
