package controllers

import (
	"go.mongodb.org/mongo-driver/bson"
)

const earthRadiusKm = 6371.0

// ListFilters are the conjunctive issue-list filters parsed from the query
// string. Zero values mean "not filtered".
type ListFilters struct {
	Status   string
	Category string
	Priority string
	City     string
	Search   string
	Lat      *float64
	Lng      *float64
	RadiusKm *float64
}

// BuildIssueFilter translates the filters into a single Mongo query
// document. All clauses combine with AND; the radius filter is a thin
// pass-through to the store's native geo predicate.
func BuildIssueFilter(f ListFilters) bson.M {
	filter := bson.M{}

	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}
	if f.Category != "" && f.Category != "all" {
		filter["category"] = f.Category
	}
	if f.Priority != "" && f.Priority != "all" {
		filter["priority"] = f.Priority
	}
	if f.City != "" {
		filter["address.city"] = bson.M{"$regex": f.City, "$options": "i"}
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Lat != nil && f.Lng != nil && f.RadiusKm != nil {
		filter["location"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []interface{}{
					[]float64{*f.Lng, *f.Lat},
					*f.RadiusKm / earthRadiusKm,
				},
			},
		}
	}

	return filter
}

// SortDirection maps the asc/desc query value onto Mongo's 1/-1, defaulting
// to descending.
func SortDirection(order string) int {
	if order == "asc" {
		return 1
	}
	return -1
}

// BuildSort resolves the sortBy key into Mongo sort criteria. Priority
// sorting needs a derived rank field, so callers get back needsRank=true
// and must run the aggregation path.
func BuildSort(sortBy, order string) (sort bson.D, needsRank bool) {
	dir := SortDirection(order)
	switch sortBy {
	case "popularity":
		return bson.D{{Key: "votes.upvotes", Value: dir}, {Key: "createdAt", Value: -1}}, false
	case "priority":
		return bson.D{{Key: "priorityRank", Value: dir}, {Key: "createdAt", Value: -1}}, true
	default:
		return bson.D{{Key: "createdAt", Value: dir}}, false
	}
}

// priorityRankStage derives the fixed priority rank urgent=4 > high=3 >
// medium=2 > low=1 for aggregation sorting.
func priorityRankStage() bson.M {
	return bson.M{
		"$addFields": bson.M{
			"priorityRank": bson.M{
				"$switch": bson.M{
					"branches": []bson.M{
						{"case": bson.M{"$eq": []interface{}{"$priority", "urgent"}}, "then": 4},
						{"case": bson.M{"$eq": []interface{}{"$priority", "high"}}, "then": 3},
						{"case": bson.M{"$eq": []interface{}{"$priority", "medium"}}, "then": 2},
						{"case": bson.M{"$eq": []interface{}{"$priority", "low"}}, "then": 1},
					},
					"default": 0,
				},
			},
		},
	}
}
