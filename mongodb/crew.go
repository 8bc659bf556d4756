package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/crew"
	"moviedb/person"
	"moviedb/pkg/query"
)

type crewDoc struct {
	Tconst    string   `bson:"tconst"`
	Directors []string `bson:"directors"`
	Writers   []string `bson:"writers"`

	Names []personDoc `bson:"names,omitempty"`
}

func fromCrew(c crew.Crew) crewDoc {
	return crewDoc{
		Tconst:    c.Tconst,
		Directors: orEmpty(c.Directors),
		Writers:   orEmpty(c.Writers),
	}
}

func (d crewDoc) toCrew() crew.Crew {
	c := crew.Crew{
		Tconst:    d.Tconst,
		Directors: orEmpty(d.Directors),
		Writers:   orEmpty(d.Writers),
	}
	if d.Names != nil {
		c.Names = make(map[string]person.Person, len(d.Names))
		for _, n := range d.Names {
			c.Names[n.Nconst] = n.toPerson()
		}
	}
	return c
}

type CrewRepository struct {
	coll *mongo.Collection
}

func NewCrewRepository(s *Store) *CrewRepository {
	return &CrewRepository{coll: s.Collection(CrewsCollection)}
}

func (r *CrewRepository) Find(ctx context.Context, f crew.Filter, p query.Page) ([]crew.Crew, int64, error) {
	filter := bson.D{}
	if f.Director != "" {
		filter = append(filter, bson.E{Key: "directors", Value: f.Director})
	}
	if f.Writer != "" {
		filter = append(filter, bson.E{Key: "writers", Value: f.Writer})
	}
	pipeline := mongo.Pipeline{
		match(filter),
		sortStage(nil, bson.E{Key: "tconst", Value: 1}),
	}
	docs, total, err := aggregatePage[crewDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]crew.Crew, len(docs))
	for i, d := range docs {
		out[i] = d.toCrew()
	}
	return out, total, nil
}

// GetByID resolves every director and writer against names when
// includeNames is set.
func (r *CrewRepository) GetByID(ctx context.Context, tconst string, includeNames bool) (crew.Crew, error) {
	pipeline := mongo.Pipeline{match(bson.D{{Key: "tconst", Value: tconst}})}
	if includeNames {
		pipeline = append(pipeline,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: "members", Value: bson.D{
				{Key: "$setUnion", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$directors", bson.A{}}}},
					bson.D{{Key: "$ifNull", Value: bson.A{"$writers", bson.A{}}}},
				}},
			}}}}},
			lookup(NamesCollection, "members", "nconst", "names"),
			bson.D{{Key: "$project", Value: bson.D{{Key: "members", Value: 0}}}},
		)
	}
	docs, err := aggregateAll[crewDoc](ctx, r.coll, pipeline)
	if err != nil {
		return crew.Crew{}, err
	}
	if len(docs) == 0 {
		return crew.Crew{}, translateError(mongo.ErrNoDocuments, "Crew", "tconst", tconst)
	}
	c := docs[0].toCrew()
	if includeNames && c.Names == nil {
		c.Names = map[string]person.Person{}
	}
	return c, nil
}

func (r *CrewRepository) Create(ctx context.Context, c crew.Crew) error {
	_, err := r.coll.InsertOne(ctx, fromCrew(c))
	return translateError(err)
}

func (r *CrewRepository) Update(ctx context.Context, tconst string, p crew.Patch) (crew.Crew, error) {
	var set setFields
	set.add("directors", p.Directors, p.Directors != nil)
	set.add("writers", p.Writers, p.Writers != nil)
	return r.findAndUpdate(ctx, tconst, set.update())
}

func (r *CrewRepository) Delete(ctx context.Context, tconst string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "tconst", Value: tconst}})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments, "Crew", "tconst", tconst)
	}
	return nil
}

func (r *CrewRepository) AddMembers(ctx context.Context, tconst string, role crew.Role, nconsts []string) (crew.Crew, error) {
	return r.findAndUpdate(ctx, tconst, bson.D{{Key: "$addToSet", Value: bson.D{
		{Key: string(role), Value: bson.D{{Key: "$each", Value: nconsts}}},
	}}})
}

func (r *CrewRepository) RemoveMember(ctx context.Context, tconst string, role crew.Role, nconst string) (crew.Crew, error) {
	return r.findAndUpdate(ctx, tconst, bson.D{{Key: "$pull", Value: bson.D{
		{Key: string(role), Value: nconst},
	}}})
}

func (r *CrewRepository) findAndUpdate(ctx context.Context, tconst string, update bson.D) (crew.Crew, error) {
	var d crewDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "tconst", Value: tconst}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return crew.Crew{}, translateError(err, "Crew", "tconst", tconst)
	}
	return d.toCrew(), nil
}
