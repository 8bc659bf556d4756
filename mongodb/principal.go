package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/pkg/query"
	"moviedb/principal"
)

type principalDoc struct {
	Tconst     string   `bson:"tconst"`
	Nconst     string   `bson:"nconst"`
	Ordering   int      `bson:"ordering"`
	Category   string   `bson:"category"`
	Job        *string  `bson:"job"`
	Characters []string `bson:"characters"`
}

func fromPrincipal(p principal.Principal) principalDoc {
	return principalDoc{
		Tconst:     p.Tconst,
		Nconst:     p.Nconst,
		Ordering:   p.Ordering,
		Category:   p.Category,
		Job:        p.Job,
		Characters: orEmpty(p.Characters),
	}
}

func (d principalDoc) toPrincipal() principal.Principal {
	return principal.Principal{
		Tconst:     d.Tconst,
		Nconst:     d.Nconst,
		Ordering:   d.Ordering,
		Category:   d.Category,
		Job:        d.Job,
		Characters: orEmpty(d.Characters),
	}
}

// memberDoc is one tconst/nconst group of the merge pipeline.
type memberDoc struct {
	Rows []principalDoc `bson:"rows"`
	Name []personDoc    `bson:"name,omitempty"`
}

func (d memberDoc) toCastMember() principal.CastMember {
	rows := make([]principal.Principal, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = r.toPrincipal()
	}
	m := principal.Merge(rows)
	if len(d.Name) > 0 {
		p := d.Name[0].toPerson()
		m.Name = &p
	}
	return m
}

type PrincipalRepository struct {
	coll *mongo.Collection
}

func NewPrincipalRepository(s *Store) *PrincipalRepository {
	return &PrincipalRepository{coll: s.Collection(PrincipalsCollection)}
}

func (r *PrincipalRepository) Find(ctx context.Context, f principal.Filter, p query.Page) ([]principal.CastMember, int64, error) {
	var page []bson.D
	if f.IncludeNames {
		page = append(page, lookup(NamesCollection, "_id.nconst", "nconst", "name"))
	}
	docs, total, err := aggregatePage[memberDoc](ctx, r.coll, mergePipeline(f), p, page...)
	if err != nil {
		return nil, 0, err
	}
	out := make([]principal.CastMember, len(docs))
	for i, d := range docs {
		out[i] = d.toCastMember()
	}
	return out, total, nil
}

func (r *PrincipalRepository) Rows(ctx context.Context, tconst, nconst string) ([]principal.Principal, error) {
	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "tconst", Value: tconst}, {Key: "nconst", Value: nconst}},
		options.Find().SetSort(bson.D{{Key: "ordering", Value: 1}}),
	)
	if err != nil {
		return nil, translateError(err)
	}
	var docs []principalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}
	out := make([]principal.Principal, len(docs))
	for i, d := range docs {
		out[i] = d.toPrincipal()
	}
	return out, nil
}

func (r *PrincipalRepository) Create(ctx context.Context, p principal.Principal) error {
	_, err := r.coll.InsertOne(ctx, fromPrincipal(p))
	return translateError(err)
}

func (r *PrincipalRepository) Update(ctx context.Context, tconst, nconst string, ordering int, p principal.Patch) (principal.Principal, error) {
	var set setFields
	set.add("category", p.Category, p.Category != nil)
	set.add("job", p.Job, p.Job != nil)
	set.add("characters", p.Characters, p.Characters != nil)

	var d principalDoc
	err := r.coll.FindOneAndUpdate(ctx,
		rowKey(tconst, nconst, ordering),
		set.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return principal.Principal{}, translateError(err,
			"Principal", "tconst", tconst, "nconst", nconst, "ordering", ordering)
	}
	return d.toPrincipal(), nil
}

func (r *PrincipalRepository) Delete(ctx context.Context, tconst, nconst string, ordering int) error {
	res, err := r.coll.DeleteOne(ctx, rowKey(tconst, nconst, ordering))
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments,
			"Principal", "tconst", tconst, "nconst", nconst, "ordering", ordering)
	}
	return nil
}

func rowKey(tconst, nconst string, ordering int) bson.D {
	return bson.D{
		{Key: "tconst", Value: tconst},
		{Key: "nconst", Value: nconst},
		{Key: "ordering", Value: ordering},
	}
}

// mergePipeline groups rows per tconst/nconst so pagination counts members,
// not rows. Members of a title come out in billing order.
func mergePipeline(f principal.Filter) mongo.Pipeline {
	filter := bson.D{}
	if f.Tconst != "" {
		filter = append(filter, bson.E{Key: "tconst", Value: f.Tconst})
	}
	if f.Nconst != "" {
		filter = append(filter, bson.E{Key: "nconst", Value: f.Nconst})
	}
	if len(f.Categories) > 0 {
		filter = append(filter, bson.E{Key: "category", Value: anyOf(f.Categories)})
	}

	return mongo.Pipeline{
		match(filter),
		{{Key: "$sort", Value: bson.D{{Key: "ordering", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "tconst", Value: "$tconst"}, {Key: "nconst", Value: "$nconst"}}},
			{Key: "rows", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "tconst", Value: "$tconst"},
				{Key: "nconst", Value: "$nconst"},
				{Key: "ordering", Value: "$ordering"},
				{Key: "category", Value: "$category"},
				{Key: "job", Value: "$job"},
				{Key: "characters", Value: "$characters"},
			}}}},
			{Key: "firstOrdering", Value: bson.D{{Key: "$min", Value: "$ordering"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.tconst", Value: 1},
			{Key: "firstOrdering", Value: 1},
			{Key: "_id.nconst", Value: 1},
		}}},
	}
}
