package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviedb/pkg/query"
)

type countDoc struct {
	Count int64 `bson:"count"`
}

type facetDoc[T any] struct {
	Results []T        `bson:"results"`
	Total   []countDoc `bson:"total"`
}

// paginate returns one page of results and the total count in a single
// round trip. The page stages run on the page only, after skip and limit.
func paginate(p query.Page, page ...bson.D) bson.D {
	results := bson.A{
		bson.D{{Key: "$skip", Value: p.Skip()}},
		bson.D{{Key: "$limit", Value: int64(p.Limit)}},
	}
	for _, stage := range page {
		results = append(results, stage)
	}
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "results", Value: results},
		{Key: "total", Value: bson.A{
			bson.D{{Key: "$count", Value: "count"}},
		}},
	}}}
}

// aggregatePage runs pipeline followed by the pagination facet.
func aggregatePage[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, p query.Page, page ...bson.D) ([]T, int64, error) {
	pipeline = append(pipeline, paginate(p, page...))
	cur, err := coll.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, 0, translateError(err)
	}
	var out []facetDoc[T]
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, translateError(err)
	}
	if len(out) == 0 {
		return []T{}, 0, nil
	}
	var total int64
	if len(out[0].Total) > 0 {
		total = out[0].Total[0].Count
	}
	return out[0].Results, total, nil
}

func aggregateAll[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, translateError(err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func match(filter bson.D) bson.D {
	if filter == nil {
		filter = bson.D{}
	}
	return bson.D{{Key: "$match", Value: filter}}
}

// sortStage applies fields in order then appends every tiebreak key not
// already present.
func sortStage(fields []query.SortField, tiebreak ...bson.E) bson.D {
	keys := bson.D{}
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		dir := 1
		if f.Desc {
			dir = -1
		}
		keys = append(keys, bson.E{Key: f.Field, Value: dir})
	}
	for _, e := range tiebreak {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e)
		}
	}
	return bson.D{{Key: "$sort", Value: keys}}
}

// lookup joins other on localField = foreignField into as.
func lookup(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

// anyOf matches one value directly and several with $in.
func anyOf(values []string) interface{} {
	if len(values) == 1 {
		return values[0]
	}
	return bson.D{{Key: "$in", Value: values}}
}

// between builds an inclusive range, or nil when both bounds are absent.
func between(lo, hi *int) bson.D {
	var r bson.D
	if lo != nil {
		r = append(r, bson.E{Key: "$gte", Value: *lo})
	}
	if hi != nil {
		r = append(r, bson.E{Key: "$lte", Value: *hi})
	}
	return r
}

// setFields collects the non-nil entries of an update into a $set document.
type setFields bson.D

func (s *setFields) add(key string, value interface{}, present bool) {
	if present {
		*s = append(*s, bson.E{Key: key, Value: value})
	}
}

func (s setFields) update() bson.D {
	return bson.D{{Key: "$set", Value: bson.D(s)}}
}
