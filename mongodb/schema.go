package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	intOrNull    = bson.D{{Key: "bsonType", Value: bson.A{"int", "long", "null"}}}
	stringOrNull = bson.D{{Key: "bsonType", Value: bson.A{"string", "null"}}}
	str          = bson.D{{Key: "bsonType", Value: "string"}}
	boolean      = bson.D{{Key: "bsonType", Value: "bool"}}
	integer      = bson.D{{Key: "bsonType", Value: bson.A{"int", "long"}}}
	stringArray  = bson.D{{Key: "bsonType", Value: "array"}, {Key: "items", Value: str}}
)

// Collection describes one collection: its validator and indexes.
type Collection struct {
	Name    string
	Schema  bson.D
	Indexes []mongo.IndexModel
}

func jsonSchema(required []string, properties bson.D) bson.D {
	return bson.D{{Key: "$jsonSchema", Value: bson.D{
		{Key: "bsonType", Value: "object"},
		{Key: "required", Value: required},
		{Key: "properties", Value: properties},
	}}}
}

func index(name string, unique bool, keys ...bson.E) mongo.IndexModel {
	opts := options.Index().SetName(name)
	if unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: bson.D(keys), Options: opts}
}

// Collections lists every collection the API reads and writes.
func Collections() []Collection {
	return []Collection{
		{
			Name: TitlesCollection,
			Schema: jsonSchema(
				[]string{"tconst", "titleType", "primaryTitle"},
				bson.D{
					{Key: "tconst", Value: str},
					{Key: "titleType", Value: str},
					{Key: "primaryTitle", Value: str},
					{Key: "originalTitle", Value: stringOrNull},
					{Key: "isAdult", Value: boolean},
					{Key: "startYear", Value: intOrNull},
					{Key: "endYear", Value: intOrNull},
					{Key: "runtimeMinutes", Value: intOrNull},
					{Key: "genres", Value: stringOrNull},
				},
			),
			Indexes: []mongo.IndexModel{
				index("tconst_unique", true, bson.E{Key: "tconst", Value: 1}),
				index("titleType_startYear", false, bson.E{Key: "titleType", Value: 1}, bson.E{Key: "startYear", Value: 1}),
				{
					Keys: bson.D{{Key: "primaryTitle", Value: "text"}, {Key: "originalTitle", Value: "text"}},
					Options: options.Index().SetName("title_text").SetWeights(bson.D{
						{Key: "primaryTitle", Value: 10},
						{Key: "originalTitle", Value: 5},
					}),
				},
			},
		},
		{
			Name: NamesCollection,
			Schema: jsonSchema(
				[]string{"nconst", "primaryName"},
				bson.D{
					{Key: "nconst", Value: str},
					{Key: "primaryName", Value: str},
					{Key: "birthYear", Value: intOrNull},
					{Key: "deathYear", Value: intOrNull},
					{Key: "primaryProfession", Value: stringArray},
					{Key: "knownForTitles", Value: stringArray},
				},
			),
			Indexes: []mongo.IndexModel{
				index("nconst_unique", true, bson.E{Key: "nconst", Value: 1}),
				index("primaryProfession", false, bson.E{Key: "primaryProfession", Value: 1}),
				{
					Keys:    bson.D{{Key: "primaryName", Value: "text"}},
					Options: options.Index().SetName("name_text"),
				},
			},
		},
		{
			Name: PrincipalsCollection,
			Schema: jsonSchema(
				[]string{"tconst", "nconst", "ordering", "category"},
				bson.D{
					{Key: "tconst", Value: str},
					{Key: "nconst", Value: str},
					{Key: "ordering", Value: integer},
					{Key: "category", Value: str},
					{Key: "job", Value: stringOrNull},
					{Key: "characters", Value: stringArray},
				},
			),
			Indexes: []mongo.IndexModel{
				index("tconst_nconst_ordering_unique", true,
					bson.E{Key: "tconst", Value: 1}, bson.E{Key: "nconst", Value: 1}, bson.E{Key: "ordering", Value: 1}),
				index("nconst", false, bson.E{Key: "nconst", Value: 1}),
			},
		},
		{
			Name: CrewsCollection,
			Schema: jsonSchema(
				[]string{"tconst"},
				bson.D{
					{Key: "tconst", Value: str},
					{Key: "directors", Value: stringArray},
					{Key: "writers", Value: stringArray},
				},
			),
			Indexes: []mongo.IndexModel{
				index("tconst_unique", true, bson.E{Key: "tconst", Value: 1}),
				index("directors", false, bson.E{Key: "directors", Value: 1}),
				index("writers", false, bson.E{Key: "writers", Value: 1}),
			},
		},
		{
			Name: AkasCollection,
			Schema: jsonSchema(
				[]string{"titleId", "ordering", "title"},
				bson.D{
					{Key: "titleId", Value: str},
					{Key: "ordering", Value: integer},
					{Key: "title", Value: str},
					{Key: "region", Value: stringOrNull},
					{Key: "language", Value: stringOrNull},
					{Key: "types", Value: stringArray},
					{Key: "attributes", Value: stringArray},
					{Key: "isOriginalTitle", Value: boolean},
				},
			),
			Indexes: []mongo.IndexModel{
				index("titleId_ordering_unique", true, bson.E{Key: "titleId", Value: 1}, bson.E{Key: "ordering", Value: 1}),
				index("region_language", false, bson.E{Key: "region", Value: 1}, bson.E{Key: "language", Value: 1}),
			},
		},
		{
			Name: EpisodesCollection,
			Schema: jsonSchema(
				[]string{"tconst", "parentTconst"},
				bson.D{
					{Key: "tconst", Value: str},
					{Key: "parentTconst", Value: str},
					{Key: "seasonNumber", Value: intOrNull},
					{Key: "episodeNumber", Value: intOrNull},
				},
			),
			Indexes: []mongo.IndexModel{
				index("tconst_unique", true, bson.E{Key: "tconst", Value: 1}),
				index("parent_season_episode", false,
					bson.E{Key: "parentTconst", Value: 1}, bson.E{Key: "seasonNumber", Value: 1}, bson.E{Key: "episodeNumber", Value: 1}),
			},
		},
	}
}

// EnsureSchema creates each collection with its validator, or updates the
// validator of an existing one, then creates the indexes. It is idempotent.
func EnsureSchema(ctx context.Context, s *Store) error {
	for _, c := range Collections() {
		if err := ensureCollection(ctx, s.Database(), c); err != nil {
			return err
		}
		if _, err := s.Collection(c.Name).Indexes().CreateMany(ctx, c.Indexes); err != nil {
			return fmt.Errorf("mongodb: create indexes of %s: %w", c.Name, err)
		}
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, c Collection) error {
	err := db.CreateCollection(ctx, c.Name, options.CreateCollection().SetValidator(c.Schema))
	if err == nil {
		return nil
	}
	var ce mongo.CommandError
	if !errors.As(err, &ce) || ce.Code != codeNamespaceExists {
		return fmt.Errorf("mongodb: create collection %s: %w", c.Name, err)
	}
	err = db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: c.Name},
		{Key: "validator", Value: c.Schema},
	}).Err()
	if err != nil {
		return fmt.Errorf("mongodb: update validator of %s: %w", c.Name, err)
	}
	return nil
}
