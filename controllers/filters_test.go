package controllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildIssueFilter_Empty(t *testing.T) {
	require.Equal(t, bson.M{}, BuildIssueFilter(ListFilters{}))
}

func TestBuildIssueFilter_AllTreatedAsUnfiltered(t *testing.T) {
	filter := BuildIssueFilter(ListFilters{Status: "all", Category: "all", Priority: "all"})
	require.Empty(t, filter)
}

func TestBuildIssueFilter_Conjunctive(t *testing.T) {
	filter := BuildIssueFilter(ListFilters{
		Status:   "reported",
		Category: "roads-transport",
		Priority: "high",
		City:     "delhi",
	})

	require.Equal(t, "reported", filter["status"])
	require.Equal(t, "roads-transport", filter["category"])
	require.Equal(t, "high", filter["priority"])
	require.Equal(t, bson.M{"$regex": "delhi", "$options": "i"}, filter["address.city"])
}

func TestBuildIssueFilter_SearchMatchesTitleOrDescription(t *testing.T) {
	filter := BuildIssueFilter(ListFilters{Search: "pothole"})

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)
	require.Equal(t, bson.M{"$regex": "pothole", "$options": "i"}, clauses[0]["title"])
	require.Equal(t, bson.M{"$regex": "pothole", "$options": "i"}, clauses[1]["description"])
}

func TestBuildIssueFilter_GeoRadius(t *testing.T) {
	lat, lng, radius := 40.7128, -74.006, 5.0
	filter := BuildIssueFilter(ListFilters{Lat: &lat, Lng: &lng, RadiusKm: &radius})

	geo, ok := filter["location"].(bson.M)
	require.True(t, ok)
	within, ok := geo["$geoWithin"].(bson.M)
	require.True(t, ok)
	sphere, ok := within["$centerSphere"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []float64{lng, lat}, sphere[0])
	require.InDelta(t, radius/earthRadiusKm, sphere[1].(float64), 1e-12)
}

func TestBuildIssueFilter_GeoNeedsAllThreeParams(t *testing.T) {
	lat := 40.7128
	filter := BuildIssueFilter(ListFilters{Lat: &lat})
	require.NotContains(t, filter, "location")
}

func TestBuildSort(t *testing.T) {
	sort, needsRank := BuildSort("createdAt", "desc")
	require.False(t, needsRank)
	require.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sort)

	sort, needsRank = BuildSort("createdAt", "asc")
	require.False(t, needsRank)
	require.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, sort)

	sort, needsRank = BuildSort("popularity", "desc")
	require.False(t, needsRank)
	require.Equal(t, bson.D{{Key: "votes.upvotes", Value: -1}, {Key: "createdAt", Value: -1}}, sort)

	sort, needsRank = BuildSort("priority", "asc")
	require.True(t, needsRank)
	require.Equal(t, bson.D{{Key: "priorityRank", Value: 1}, {Key: "createdAt", Value: -1}}, sort)
}
