package db

import (
	"context"
	"database/sql"
	"time"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type AdvertiserLookup struct {
	Name         string
	AdvertiserID string
	HasVideos    bool
	VideoCount   sql.NullInt64
	LastUpdated  time.Time
}

const getLookup = `
SELECT name, advertiser_id, has_videos, video_count, last_updated
FROM advertiser_lookups
WHERE name = ?
`

func (q *Queries) GetLookup(ctx context.Context, name string) (AdvertiserLookup, error) {
	row := q.db.QueryRowContext(ctx, getLookup, name)
	var out AdvertiserLookup
	err := row.Scan(
		&out.Name,
		&out.AdvertiserID,
		&out.HasVideos,
		&out.VideoCount,
		&out.LastUpdated,
	)
	return out, err
}

const upsertLookup = `
INSERT INTO advertiser_lookups (name, advertiser_id, has_videos, video_count, last_updated)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    advertiser_id = excluded.advertiser_id,
    has_videos = excluded.has_videos,
    video_count = excluded.video_count,
    last_updated = excluded.last_updated
`

type UpsertLookupParams struct {
	Name         string
	AdvertiserID string
	HasVideos    bool
	VideoCount   sql.NullInt64
	LastUpdated  time.Time
}

func (q *Queries) UpsertLookup(ctx context.Context, arg UpsertLookupParams) error {
	_, err := q.db.ExecContext(ctx, upsertLookup,
		arg.Name,
		arg.AdvertiserID,
		arg.HasVideos,
		arg.VideoCount,
		arg.LastUpdated,
	)
	return err
}
