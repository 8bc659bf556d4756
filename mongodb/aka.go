package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/aka"
	"moviedb/pkg/query"
)

type akaDoc struct {
	TitleID         string   `bson:"titleId"`
	Ordering        int      `bson:"ordering"`
	Title           string   `bson:"title"`
	Region          *string  `bson:"region"`
	Language        *string  `bson:"language"`
	Types           []string `bson:"types"`
	Attributes      []string `bson:"attributes"`
	IsOriginalTitle bool     `bson:"isOriginalTitle"`
}

func fromAka(a aka.Aka) akaDoc {
	return akaDoc{
		TitleID:         a.TitleID,
		Ordering:        a.Ordering,
		Title:           a.Title,
		Region:          a.Region,
		Language:        a.Language,
		Types:           orEmpty(a.Types),
		Attributes:      orEmpty(a.Attributes),
		IsOriginalTitle: a.IsOriginalTitle,
	}
}

func (d akaDoc) toAka() aka.Aka {
	return aka.Aka{
		TitleID:         d.TitleID,
		Ordering:        d.Ordering,
		Title:           d.Title,
		Region:          d.Region,
		Language:        d.Language,
		Types:           orEmpty(d.Types),
		Attributes:      orEmpty(d.Attributes),
		IsOriginalTitle: d.IsOriginalTitle,
	}
}

type AkaRepository struct {
	coll *mongo.Collection
}

func NewAkaRepository(s *Store) *AkaRepository {
	return &AkaRepository{coll: s.Collection(AkasCollection)}
}

func (r *AkaRepository) Find(ctx context.Context, f aka.Filter, p query.Page) ([]aka.Aka, int64, error) {
	filter := bson.D{}
	if f.TitleID != "" {
		filter = append(filter, bson.E{Key: "titleId", Value: f.TitleID})
	}
	if f.Region != nil {
		filter = append(filter, bson.E{Key: "region", Value: *f.Region})
	}
	if f.Language != nil {
		filter = append(filter, bson.E{Key: "language", Value: *f.Language})
	}
	if f.IsOriginalTitle != nil {
		filter = append(filter, bson.E{Key: "isOriginalTitle", Value: *f.IsOriginalTitle})
	}
	pipeline := mongo.Pipeline{
		match(filter),
		sortStage(nil, bson.E{Key: "titleId", Value: 1}, bson.E{Key: "ordering", Value: 1}),
	}
	docs, total, err := aggregatePage[akaDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]aka.Aka, len(docs))
	for i, d := range docs {
		out[i] = d.toAka()
	}
	return out, total, nil
}

func (r *AkaRepository) GetByID(ctx context.Context, titleID string, ordering int) (aka.Aka, error) {
	var d akaDoc
	if err := r.coll.FindOne(ctx, akaKey(titleID, ordering)).Decode(&d); err != nil {
		return aka.Aka{}, translateError(err, "Aka", "titleId", titleID, "ordering", ordering)
	}
	return d.toAka(), nil
}

func (r *AkaRepository) MaxOrdering(ctx context.Context, titleID string) (int, error) {
	var d akaDoc
	err := r.coll.FindOne(ctx,
		bson.D{{Key: "titleId", Value: titleID}},
		options.FindOne().
			SetSort(bson.D{{Key: "ordering", Value: -1}}).
			SetProjection(bson.D{{Key: "ordering", Value: 1}}),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, translateError(err)
	}
	return d.Ordering, nil
}

func (r *AkaRepository) Create(ctx context.Context, a aka.Aka) error {
	_, err := r.coll.InsertOne(ctx, fromAka(a))
	return translateError(err)
}

func (r *AkaRepository) Update(ctx context.Context, titleID string, ordering int, p aka.Patch) (aka.Aka, error) {
	var set setFields
	set.add("title", p.Title, p.Title != nil)
	set.add("region", p.Region, p.Region != nil)
	set.add("language", p.Language, p.Language != nil)
	set.add("types", p.Types, p.Types != nil)
	set.add("attributes", p.Attributes, p.Attributes != nil)
	set.add("isOriginalTitle", p.IsOriginalTitle, p.IsOriginalTitle != nil)

	var d akaDoc
	err := r.coll.FindOneAndUpdate(ctx,
		akaKey(titleID, ordering),
		set.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return aka.Aka{}, translateError(err, "Aka", "titleId", titleID, "ordering", ordering)
	}
	return d.toAka(), nil
}

func (r *AkaRepository) Delete(ctx context.Context, titleID string, ordering int) error {
	res, err := r.coll.DeleteOne(ctx, akaKey(titleID, ordering))
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments, "Aka", "titleId", titleID, "ordering", ordering)
	}
	return nil
}

func akaKey(titleID string, ordering int) bson.D {
	return bson.D{{Key: "titleId", Value: titleID}, {Key: "ordering", Value: ordering}}
}
