package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/person"
	"moviedb/principal"
	"moviedb/title"
)

const codeDuplicateKey = 11000

// Loader bulk inserts dataset rows. Rows whose key already exists are
// skipped, so an import can be resumed.
type Loader struct {
	store *Store
}

func NewLoader(s *Store) *Loader {
	return &Loader{store: s}
}

// LoadResult counts one batch.
type LoadResult struct {
	Inserted int
	Skipped  int
}

func (l *Loader) Titles(ctx context.Context, ts []title.Title) (LoadResult, error) {
	docs := make([]interface{}, len(ts))
	for i, t := range ts {
		docs[i] = fromTitle(t)
	}
	return l.insert(ctx, TitlesCollection, docs)
}

func (l *Loader) Names(ctx context.Context, ps []person.Person) (LoadResult, error) {
	docs := make([]interface{}, len(ps))
	for i, p := range ps {
		docs[i] = fromPerson(p)
	}
	return l.insert(ctx, NamesCollection, docs)
}

func (l *Loader) Principals(ctx context.Context, ps []principal.Principal) (LoadResult, error) {
	docs := make([]interface{}, len(ps))
	for i, p := range ps {
		docs[i] = fromPrincipal(p)
	}
	return l.insert(ctx, PrincipalsCollection, docs)
}

func (l *Loader) Crews(ctx context.Context, cs []crew.Crew) (LoadResult, error) {
	docs := make([]interface{}, len(cs))
	for i, c := range cs {
		docs[i] = fromCrew(c)
	}
	return l.insert(ctx, CrewsCollection, docs)
}

func (l *Loader) Akas(ctx context.Context, as []aka.Aka) (LoadResult, error) {
	docs := make([]interface{}, len(as))
	for i, a := range as {
		docs[i] = fromAka(a)
	}
	return l.insert(ctx, AkasCollection, docs)
}

func (l *Loader) Episodes(ctx context.Context, es []episode.Episode) (LoadResult, error) {
	docs := make([]interface{}, len(es))
	for i, e := range es {
		docs[i] = fromEpisode(e)
	}
	return l.insert(ctx, EpisodesCollection, docs)
}

func (l *Loader) insert(ctx context.Context, collection string, docs []interface{}) (LoadResult, error) {
	if len(docs) == 0 {
		return LoadResult{}, nil
	}
	res, err := l.store.Collection(collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return LoadResult{Inserted: len(res.InsertedIDs)}, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return LoadResult{}, fmt.Errorf("mongodb: insert into %s: %w", collection, translateError(err))
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != codeDuplicateKey {
			return LoadResult{}, fmt.Errorf("mongodb: insert into %s: %w", collection, translateError(err))
		}
	}
	return LoadResult{Inserted: len(docs) - len(bwe.WriteErrors), Skipped: len(bwe.WriteErrors)}, nil
}
