package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/episode"
	"moviedb/pkg/query"
)

type episodeDoc struct {
	Tconst        string `bson:"tconst"`
	ParentTconst  string `bson:"parentTconst"`
	SeasonNumber  *int   `bson:"seasonNumber"`
	EpisodeNumber *int   `bson:"episodeNumber"`

	Title *titleDoc `bson:"title,omitempty"`
}

func fromEpisode(e episode.Episode) episodeDoc {
	return episodeDoc{
		Tconst:        e.Tconst,
		ParentTconst:  e.ParentTconst,
		SeasonNumber:  e.SeasonNumber,
		EpisodeNumber: e.EpisodeNumber,
	}
}

func (d episodeDoc) toEpisode() episode.Episode {
	e := episode.Episode{
		Tconst:        d.Tconst,
		ParentTconst:  d.ParentTconst,
		SeasonNumber:  d.SeasonNumber,
		EpisodeNumber: d.EpisodeNumber,
	}
	if d.Title != nil {
		t := d.Title.toTitle()
		e.Title = &t
	}
	return e
}

func toEpisodes(docs []episodeDoc) []episode.Episode {
	out := make([]episode.Episode, len(docs))
	for i, d := range docs {
		out[i] = d.toEpisode()
	}
	return out
}

type seasonDoc struct {
	SeasonNumber *int         `bson:"_id"`
	Episodes     []episodeDoc `bson:"episodes"`
}

type EpisodeRepository struct {
	coll *mongo.Collection
}

func NewEpisodeRepository(s *Store) *EpisodeRepository {
	return &EpisodeRepository{coll: s.Collection(EpisodesCollection)}
}

func (r *EpisodeRepository) Find(ctx context.Context, f episode.Filter, p query.Page) ([]episode.Episode, int64, error) {
	pipeline := mongo.Pipeline{
		match(episodeFilter(f)),
		sortStage(nil,
			bson.E{Key: "parentTconst", Value: 1},
			bson.E{Key: "seasonNumber", Value: 1},
			bson.E{Key: "episodeNumber", Value: 1},
			bson.E{Key: "tconst", Value: 1},
		),
	}
	var page []bson.D
	if f.IncludeTitles {
		page = titleJoin()
	}
	docs, total, err := aggregatePage[episodeDoc](ctx, r.coll, pipeline, p, page...)
	if err != nil {
		return nil, 0, err
	}
	return toEpisodes(docs), total, nil
}

// Seasons groups the episodes of a series by season number, seasons and
// episodes both ascending.
func (r *EpisodeRepository) Seasons(ctx context.Context, f episode.Filter) ([]episode.Season, error) {
	pipeline := mongo.Pipeline{
		match(episodeFilter(f)),
		sortStage(nil,
			bson.E{Key: "seasonNumber", Value: 1},
			bson.E{Key: "episodeNumber", Value: 1},
			bson.E{Key: "tconst", Value: 1},
		),
	}
	if f.IncludeTitles {
		pipeline = append(pipeline, titleJoin()...)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$seasonNumber"},
			{Key: "episodes", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	)
	docs, err := aggregateAll[seasonDoc](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	out := make([]episode.Season, len(docs))
	for i, d := range docs {
		out[i] = episode.Season{SeasonNumber: d.SeasonNumber, Episodes: toEpisodes(d.Episodes)}
	}
	return out, nil
}

func (r *EpisodeRepository) GetByID(ctx context.Context, tconst string) (episode.Episode, error) {
	var d episodeDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "tconst", Value: tconst}}).Decode(&d); err != nil {
		return episode.Episode{}, translateError(err, "Episode", "tconst", tconst)
	}
	return d.toEpisode(), nil
}

func (r *EpisodeRepository) Create(ctx context.Context, e episode.Episode) error {
	_, err := r.coll.InsertOne(ctx, fromEpisode(e))
	return translateError(err)
}

func (r *EpisodeRepository) Update(ctx context.Context, tconst string, p episode.Patch) (episode.Episode, error) {
	var set setFields
	set.add("parentTconst", p.ParentTconst, p.ParentTconst != nil)
	set.add("seasonNumber", p.SeasonNumber, p.SeasonNumber != nil)
	set.add("episodeNumber", p.EpisodeNumber, p.EpisodeNumber != nil)

	var d episodeDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "tconst", Value: tconst}},
		set.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return episode.Episode{}, translateError(err, "Episode", "tconst", tconst)
	}
	return d.toEpisode(), nil
}

func (r *EpisodeRepository) Delete(ctx context.Context, tconst string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "tconst", Value: tconst}})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments, "Episode", "tconst", tconst)
	}
	return nil
}

func episodeFilter(f episode.Filter) bson.D {
	filter := bson.D{}
	if f.ParentTconst != "" {
		filter = append(filter, bson.E{Key: "parentTconst", Value: f.ParentTconst})
	}
	if f.Season != nil {
		filter = append(filter, bson.E{Key: "seasonNumber", Value: *f.Season})
	}
	return filter
}

// titleJoin attaches the basics of each episode as a single document.
func titleJoin() []bson.D {
	return []bson.D{
		lookup(TitlesCollection, "tconst", "tconst", "title"),
		{{Key: "$addFields", Value: bson.D{{Key: "title", Value: bson.D{
			{Key: "$arrayElemAt", Value: bson.A{"$title", 0}},
		}}}}},
	}
}
