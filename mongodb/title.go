package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/pkg/query"
	"moviedb/title"
)

// titleDoc stores genres as one delimited string.
type titleDoc struct {
	Tconst         string   `bson:"tconst"`
	TitleType      string   `bson:"titleType"`
	PrimaryTitle   string   `bson:"primaryTitle"`
	OriginalTitle  string   `bson:"originalTitle"`
	IsAdult        bool     `bson:"isAdult"`
	StartYear      *int     `bson:"startYear"`
	EndYear        *int     `bson:"endYear"`
	RuntimeMinutes *int     `bson:"runtimeMinutes"`
	Genres         string   `bson:"genres"`
	Score          *float64 `bson:"score,omitempty"`
}

func fromTitle(t title.Title) titleDoc {
	return titleDoc{
		Tconst:         t.Tconst,
		TitleType:      t.TitleType,
		PrimaryTitle:   t.PrimaryTitle,
		OriginalTitle:  t.OriginalTitle,
		IsAdult:        t.IsAdult,
		StartYear:      t.StartYear,
		EndYear:        t.EndYear,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         title.JoinGenres(t.Genres),
	}
}

func (d titleDoc) toTitle() title.Title {
	return title.Title{
		Tconst:         d.Tconst,
		TitleType:      d.TitleType,
		PrimaryTitle:   d.PrimaryTitle,
		OriginalTitle:  d.OriginalTitle,
		IsAdult:        d.IsAdult,
		StartYear:      d.StartYear,
		EndYear:        d.EndYear,
		RuntimeMinutes: d.RuntimeMinutes,
		Genres:         title.SplitGenres(d.Genres),
		Score:          d.Score,
	}
}

func toTitles(docs []titleDoc) []title.Title {
	out := make([]title.Title, len(docs))
	for i, d := range docs {
		out[i] = d.toTitle()
	}
	return out
}

type TitleRepository struct {
	coll *mongo.Collection
}

func NewTitleRepository(s *Store) *TitleRepository {
	return &TitleRepository{coll: s.Collection(TitlesCollection)}
}

func (r *TitleRepository) Find(ctx context.Context, f title.Filter, p query.Page) ([]title.Title, int64, error) {
	pipeline := mongo.Pipeline{match(titleFilter(f))}
	pipeline = append(pipeline, genreStages(f.Genres)...)
	pipeline = append(pipeline, sortStage(f.Sort, bson.E{Key: "tconst", Value: 1}))

	docs, total, err := aggregatePage[titleDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	return toTitles(docs), total, nil
}

// Search ranks by text score. Explicit sort keys come first, with score and
// tconst kept as tiebreaks.
func (r *TitleRepository) Search(ctx context.Context, f title.SearchFilter, p query.Page) ([]title.Title, int64, error) {
	pipeline := searchPipeline(f)
	docs, total, err := aggregatePage[titleDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	return toTitles(docs), total, nil
}

func (r *TitleRepository) GetByID(ctx context.Context, tconst string) (title.Title, error) {
	var d titleDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "tconst", Value: tconst}}).Decode(&d)
	if err != nil {
		return title.Title{}, translateError(err, "Title", "tconst", tconst)
	}
	return d.toTitle(), nil
}

func (r *TitleRepository) Create(ctx context.Context, t title.Title) error {
	_, err := r.coll.InsertOne(ctx, fromTitle(t))
	return translateError(err)
}

func (r *TitleRepository) Update(ctx context.Context, tconst string, p title.Patch) (title.Title, error) {
	var set setFields
	set.add("titleType", p.TitleType, p.TitleType != nil)
	set.add("primaryTitle", p.PrimaryTitle, p.PrimaryTitle != nil)
	set.add("originalTitle", p.OriginalTitle, p.OriginalTitle != nil)
	set.add("isAdult", p.IsAdult, p.IsAdult != nil)
	set.add("startYear", p.StartYear, p.StartYear != nil)
	set.add("endYear", p.EndYear, p.EndYear != nil)
	set.add("runtimeMinutes", p.RuntimeMinutes, p.RuntimeMinutes != nil)
	set.add("genres", title.JoinGenres(p.Genres), p.Genres != nil)

	var d titleDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "tconst", Value: tconst}},
		set.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return title.Title{}, translateError(err, "Title", "tconst", tconst)
	}
	return d.toTitle(), nil
}

func (r *TitleRepository) Delete(ctx context.Context, tconst string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "tconst", Value: tconst}})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments, "Title", "tconst", tconst)
	}
	return nil
}

func titleFilter(f title.Filter) bson.D {
	filter := bson.D{}
	if len(f.TitleTypes) > 0 {
		filter = append(filter, bson.E{Key: "titleType", Value: anyOf(f.TitleTypes)})
	}
	if f.IsAdult != nil {
		filter = append(filter, bson.E{Key: "isAdult", Value: *f.IsAdult})
	}
	if r := between(f.Since, f.Until); r != nil {
		filter = append(filter, bson.E{Key: "startYear", Value: r})
	}
	if r := between(f.MinRuntime, f.MaxRuntime); r != nil {
		filter = append(filter, bson.E{Key: "runtimeMinutes", Value: r})
	}
	return filter
}

// genreStages filters on the array view of the stored genre string.
func genreStages(genres []string) []bson.D {
	if len(genres) == 0 {
		return nil
	}
	return []bson.D{
		{{Key: "$addFields", Value: bson.D{{Key: "genreList", Value: bson.D{
			{Key: "$split", Value: bson.A{"$genres", title.GenreSeparator}},
		}}}}},
		match(bson.D{{Key: "genreList", Value: bson.D{{Key: "$in", Value: genres}}}}),
		{{Key: "$project", Value: bson.D{{Key: "genreList", Value: 0}}}},
	}
}

func searchPipeline(f title.SearchFilter) mongo.Pipeline {
	filter := append(bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: f.Query}}}}, titleFilter(f.Filter)...)
	pipeline := mongo.Pipeline{
		match(filter),
		{{Key: "$addFields", Value: bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}}},
	}
	pipeline = append(pipeline, genreStages(f.Genres)...)
	return append(pipeline, sortStage(f.Sort,
		bson.E{Key: "score", Value: -1},
		bson.E{Key: "tconst", Value: 1},
	))
}
