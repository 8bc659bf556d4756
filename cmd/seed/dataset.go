package main

import (
	"context"
	"errors"
	"io"

	"moviedb/mongodb"
)

type stats struct {
	Rows     int
	Inserted int
	Skipped  int
	// Invalid counts rows rejected before reaching the database.
	Invalid int
}

type dataset struct {
	name    string
	columns []string
	load    func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error)
}

// datasets are imported in this order so parents exist before the rows
// that reference them.
var datasets = []dataset{
	{
		name:    "title.basics",
		columns: []string{"tconst", "titleType", "primaryTitle", "originalTitle", "isAdult", "startYear", "endYear", "runtimeMinutes", "genres"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parseTitle, l.Titles)
		},
	},
	{
		name:    "name.basics",
		columns: []string{"nconst", "primaryName", "birthYear", "deathYear", "primaryProfession", "knownForTitles"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parsePerson, l.Names)
		},
	},
	{
		name:    "title.akas",
		columns: []string{"titleId", "ordering", "title", "region", "language", "types", "attributes", "isOriginalTitle"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parseAka, l.Akas)
		},
	},
	{
		name:    "title.crew",
		columns: []string{"tconst", "directors", "writers"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parseCrew, l.Crews)
		},
	},
	{
		name:    "title.episode",
		columns: []string{"tconst", "parentTconst", "seasonNumber", "episodeNumber"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parseEpisode, l.Episodes)
		},
	},
	{
		name:    "title.principals",
		columns: []string{"tconst", "ordering", "nconst", "category", "job", "characters"},
		load: func(ctx context.Context, l *mongodb.Loader, r *tsvReader, batch, limit int) (stats, error) {
			return load(ctx, r, batch, limit, parsePrincipal, l.Principals)
		},
	},
}

// load parses every record of r and inserts the valid ones in batches.
func load[T any](
	ctx context.Context,
	r *tsvReader,
	batch, limit int,
	parse func(record) (T, error),
	insert func(context.Context, []T) (mongodb.LoadResult, error),
) (stats, error) {
	if batch <= 0 {
		batch = 1000
	}
	var st stats
	buf := make([]T, 0, batch)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		res, err := insert(ctx, buf)
		st.Inserted += res.Inserted
		st.Skipped += res.Skipped
		buf = buf[:0]
		return err
	}

	for limit <= 0 || st.Rows < limit {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		st.Rows++

		v, err := parse(rec)
		if err != nil {
			st.Invalid++
			continue
		}
		buf = append(buf, v)
		if len(buf) == batch {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	return st, flush()
}
