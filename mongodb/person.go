package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/person"
	"moviedb/pkg/query"
	"moviedb/title"
)

type personDoc struct {
	Nconst            string   `bson:"nconst"`
	PrimaryName       string   `bson:"primaryName"`
	BirthYear         *int     `bson:"birthYear"`
	DeathYear         *int     `bson:"deathYear"`
	PrimaryProfession []string `bson:"primaryProfession"`
	KnownForTitles    []string `bson:"knownForTitles"`
	Score             *float64 `bson:"score,omitempty"`

	Titles []titleDoc `bson:"titles,omitempty"`
}

func fromPerson(p person.Person) personDoc {
	return personDoc{
		Nconst:            p.Nconst,
		PrimaryName:       p.PrimaryName,
		BirthYear:         p.BirthYear,
		DeathYear:         p.DeathYear,
		PrimaryProfession: orEmpty(p.PrimaryProfession),
		KnownForTitles:    orEmpty(p.KnownForTitles),
	}
}

func (d personDoc) toPerson() person.Person {
	p := person.Person{
		Nconst:            d.Nconst,
		PrimaryName:       d.PrimaryName,
		BirthYear:         d.BirthYear,
		DeathYear:         d.DeathYear,
		PrimaryProfession: orEmpty(d.PrimaryProfession),
		KnownForTitles:    orEmpty(d.KnownForTitles),
		Score:             d.Score,
	}
	if d.Titles != nil {
		p.Titles = make(map[string]title.Title, len(d.Titles))
		for _, t := range d.Titles {
			p.Titles[t.Tconst] = t.toTitle()
		}
	}
	return p
}

func toPeople(docs []personDoc) []person.Person {
	out := make([]person.Person, len(docs))
	for i, d := range docs {
		out[i] = d.toPerson()
	}
	return out
}

type PersonRepository struct {
	coll *mongo.Collection
}

func NewPersonRepository(s *Store) *PersonRepository {
	return &PersonRepository{coll: s.Collection(NamesCollection)}
}

func (r *PersonRepository) Find(ctx context.Context, f person.Filter, p query.Page) ([]person.Person, int64, error) {
	pipeline := mongo.Pipeline{
		match(personFilter(f)),
		sortStage(f.Sort, bson.E{Key: "nconst", Value: 1}),
	}
	docs, total, err := aggregatePage[personDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	return toPeople(docs), total, nil
}

func (r *PersonRepository) Search(ctx context.Context, f person.SearchFilter, p query.Page) ([]person.Person, int64, error) {
	filter := append(bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: f.Query}}}}, personFilter(f.Filter)...)
	pipeline := mongo.Pipeline{
		match(filter),
		{{Key: "$addFields", Value: bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}}},
		sortStage(f.Sort, bson.E{Key: "score", Value: -1}, bson.E{Key: "nconst", Value: 1}),
	}
	docs, total, err := aggregatePage[personDoc](ctx, r.coll, pipeline, p)
	if err != nil {
		return nil, 0, err
	}
	return toPeople(docs), total, nil
}

// GetByID resolves knownForTitles against the titles collection when
// includeTitles is set.
func (r *PersonRepository) GetByID(ctx context.Context, nconst string, includeTitles bool) (person.Person, error) {
	pipeline := mongo.Pipeline{match(bson.D{{Key: "nconst", Value: nconst}})}
	if includeTitles {
		pipeline = append(pipeline, lookup(TitlesCollection, "knownForTitles", "tconst", "titles"))
	}
	docs, err := aggregateAll[personDoc](ctx, r.coll, pipeline)
	if err != nil {
		return person.Person{}, err
	}
	if len(docs) == 0 {
		return person.Person{}, translateError(mongo.ErrNoDocuments, "Name", "nconst", nconst)
	}
	p := docs[0].toPerson()
	if includeTitles && p.Titles == nil {
		p.Titles = map[string]title.Title{}
	}
	return p, nil
}

func (r *PersonRepository) Missing(ctx context.Context, nconsts []string) ([]string, error) {
	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "nconst", Value: bson.D{{Key: "$in", Value: nconsts}}}},
		options.Find().SetProjection(bson.D{{Key: "nconst", Value: 1}}),
	)
	if err != nil {
		return nil, translateError(err)
	}
	var found []personDoc
	if err := cur.All(ctx, &found); err != nil {
		return nil, translateError(err)
	}
	known := make(map[string]bool, len(found))
	for _, d := range found {
		known[d.Nconst] = true
	}
	missing := []string{}
	for _, n := range nconsts {
		if !known[n] {
			missing = append(missing, n)
		}
	}
	return missing, nil
}

func (r *PersonRepository) Create(ctx context.Context, p person.Person) error {
	_, err := r.coll.InsertOne(ctx, fromPerson(p))
	return translateError(err)
}

func (r *PersonRepository) Update(ctx context.Context, nconst string, p person.Patch) (person.Person, error) {
	var set setFields
	set.add("primaryName", p.PrimaryName, p.PrimaryName != nil)
	set.add("birthYear", p.BirthYear, p.BirthYear != nil)
	set.add("deathYear", p.DeathYear, p.DeathYear != nil)
	set.add("primaryProfession", p.PrimaryProfession, p.PrimaryProfession != nil)
	set.add("knownForTitles", p.KnownForTitles, p.KnownForTitles != nil)

	var d personDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "nconst", Value: nconst}},
		set.update(),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return person.Person{}, translateError(err, "Name", "nconst", nconst)
	}
	return d.toPerson(), nil
}

func (r *PersonRepository) Delete(ctx context.Context, nconst string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "nconst", Value: nconst}})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments, "Name", "nconst", nconst)
	}
	return nil
}

func personFilter(f person.Filter) bson.D {
	filter := bson.D{}
	if len(f.Professions) > 0 {
		filter = append(filter, bson.E{Key: "primaryProfession", Value: anyOf(f.Professions)})
	}
	if r := between(f.BornSince, f.BornUntil); r != nil {
		filter = append(filter, bson.E{Key: "birthYear", Value: r})
	}
	if f.Alive != nil {
		if *f.Alive {
			filter = append(filter, bson.E{Key: "deathYear", Value: nil})
		} else {
			filter = append(filter, bson.E{Key: "deathYear", Value: bson.D{{Key: "$ne", Value: nil}}})
		}
	}
	return filter
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
