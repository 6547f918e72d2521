package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civicpulse-be/config"
	"civicpulse-be/models"
	authUtils "civicpulse-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// currentActor reads the identity attached by the auth middleware. Missing
// or malformed claims yield an anonymous actor.
func currentActor(c *gin.Context) models.Actor {
	var actor models.Actor
	if idVal, exists := c.Get("user_id"); exists {
		if idStr, ok := idVal.(string); ok {
			if objID, err := primitive.ObjectIDFromHex(idStr); err == nil {
				actor.ID = objID
			}
		}
	}
	if roleVal, exists := c.Get("user_role"); exists {
		if roleStr, ok := roleVal.(string); ok {
			actor.Role = models.UserRole(roleStr)
		}
	}
	return actor
}

// issueFromPath loads the issue addressed by the :id route param.
func issueFromPath(ctx context.Context, c *gin.Context) (*models.Issue, bool) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return nil, false
	}

	var issue models.Issue
	err = config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return nil, false
	}
	return &issue, true
}

// CreateIssue handles the creation of a new issue report
func CreateIssue(c *gin.Context) {
	actor := currentActor(c)
	if actor.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Title       string            `json:"title" binding:"required,min=5,max=100"`
		Description string            `json:"description" binding:"required,min=20,max=1000"`
		Category    string            `json:"category" binding:"required,issuecategory"`
		Priority    string            `json:"priority" binding:"omitempty,issuepriority"`
		Latitude    *float64          `json:"latitude" binding:"required"`
		Longitude   *float64          `json:"longitude" binding:"required"`
		Address     models.Address    `json:"address"`
		Tags        string            `json:"tags"`
		Images      []models.ImageRef `json:"images" binding:"max=5"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.IssuePriority(input.Priority)
	}

	var tags []string
	for _, tag := range strings.Split(input.Tags, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	now := time.Now()
	issue := models.Issue{
		ID:            primitive.NewObjectID(),
		Title:         input.Title,
		Description:   input.Description,
		Category:      models.IssueCategory(input.Category),
		Priority:      priority,
		Status:        models.StatusReported,
		Location:      models.NewGeoPoint(*input.Longitude, *input.Latitude),
		Address:       input.Address,
		Images:        input.Images,
		Tags:          tags,
		Votes:         models.Votes{Voters: []models.VoterEntry{}},
		Comments:      []models.Comment{},
		StatusHistory: []models.StatusChange{},
		ReportedBy:    actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := issue.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection("issues").InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create issue"})
		return
	}

	// Best-effort back-reference on the reporter, not transactional with
	// the insert.
	_, err := config.GetCollection("users").UpdateOne(ctx,
		bson.M{"_id": actor.ID},
		bson.M{"$push": bson.M{"issuesReported": issue.ID}})
	if err != nil {
		log.Println("Error updating reporter back-reference:", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Issue reported successfully",
		"data":    issue,
	})
}

// listItem is an issue annotated with the viewer's own vote direction.
type listItem struct {
	models.Issue
	UserVote models.VoteType `json:"userVote,omitempty"`
}

func annotateIssues(issues []models.Issue, actor models.Actor) []listItem {
	items := make([]listItem, 0, len(issues))
	for _, issue := range issues {
		item := listItem{Issue: issue}
		if !actor.Anonymous() {
			item.UserVote = issue.VoteOf(actor.ID)
		}
		items = append(items, item)
	}
	return items
}

// GetAllIssues handles retrieving issues with filtering, sorting and
// offset pagination
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filters := ListFilters{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		City:     c.Query("city"),
		Search:   c.Query("search"),
	}
	if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		filters.Lat = &lat
	}
	if lng, err := strconv.ParseFloat(c.Query("lng"), 64); err == nil {
		filters.Lng = &lng
	}
	if radius, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil {
		filters.RadiusKm = &radius
	}

	filter := BuildIssueFilter(filters)
	page := authUtils.GetPaginationParams(c)
	sortCriteria, needsRank := BuildSort(c.DefaultQuery("sortBy", "createdAt"), c.DefaultQuery("sortOrder", "desc"))

	issueCollection := config.GetCollection("issues")

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count issues"})
		return
	}

	var issues []models.Issue
	if needsRank {
		// The priority sort key is a derived rank, so this path goes
		// through an aggregation pipeline.
		pipeline := []bson.M{
			{"$match": filter},
			priorityRankStage(),
			{"$sort": sortCriteria},
			{"$skip": page.Skip},
			{"$limit": int64(page.Limit)},
		}
		cursor, err := issueCollection.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &issues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode issues"})
			return
		}
	} else {
		findOptions := options.Find().
			SetSort(sortCriteria).
			SetSkip(page.Skip).
			SetLimit(int64(page.Limit))

		cursor, err := issueCollection.Find(ctx, filter, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &issues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode issues"})
			return
		}
	}

	items := annotateIssues(issues, currentActor(c))

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(items),
		"total":       totalCount,
		"totalPages":  authUtils.TotalPages(totalCount, page.Limit),
		"currentPage": page.Page,
		"data":        items,
	})
}

// GetIssue retrieves one issue by ID, incrementing its view counter as a
// side effect
func GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = config.GetCollection("issues").FindOneAndUpdate(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		}
		return
	}

	item := listItem{Issue: issue}
	if actor := currentActor(c); !actor.Anonymous() {
		item.UserVote = issue.VoteOf(actor.ID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// UpdateIssue lets the reporter or an admin edit issue details. Status is
// not touched here; it only moves through the transition endpoint.
func UpdateIssue(c *gin.Context) {
	actor := currentActor(c)

	var input struct {
		Title                   *string         `json:"title" binding:"omitempty,min=5,max=100"`
		Description             *string         `json:"description" binding:"omitempty,min=20,max=1000"`
		Category                *string         `json:"category" binding:"omitempty,issuecategory"`
		Priority                *string         `json:"priority" binding:"omitempty,issuepriority"`
		Tags                    *string         `json:"tags"`
		Address                 *models.Address `json:"address"`
		AssignedTo              *string         `json:"assignedTo"`
		EstimatedResolutionDate *time.Time      `json:"estimatedResolutionDate"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, ok := issueFromPath(ctx, c)
	if !ok {
		return
	}

	if !models.Can(actor, models.ActionUpdateIssue, issue) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to update this issue"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Category != nil {
		update["category"] = *input.Category
	}
	if input.Priority != nil {
		update["priority"] = *input.Priority
	}
	if input.Tags != nil {
		var tags []string
		for _, tag := range strings.Split(*input.Tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		update["tags"] = tags
	}
	if input.Address != nil {
		if input.Address.City == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "City is required"})
			return
		}
		update["address"] = *input.Address
	}

	// Assignment and resolution estimates are triage fields, admin only.
	if input.AssignedTo != nil || input.EstimatedResolutionDate != nil {
		if actor.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to triage this issue"})
			return
		}
		if input.AssignedTo != nil {
			assigneeID, err := primitive.ObjectIDFromHex(*input.AssignedTo)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid assignee ID"})
				return
			}
			update["assignedTo"] = assigneeID
		}
		if input.EstimatedResolutionDate != nil {
			update["estimatedResolutionDate"] = *input.EstimatedResolutionDate
		}
	}

	if _, err := config.GetCollection("issues").UpdateOne(ctx, bson.M{"_id": issue.ID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update issue"})
		return
	}

	var updated models.Issue
	if err := config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issue.ID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Issue updated successfully",
		"data":    updated,
	})
}

// TransitionIssueStatus moves an issue through the status workflow,
// appending an immutable history entry
func TransitionIssueStatus(c *gin.Context) {
	actor := currentActor(c)

	var input struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment" binding:"omitempty,max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	// Status changes on one issue must not interleave with votes or other
	// transitions.
	unlock := models.LockIssue(issueID)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, ok := issueFromPath(ctx, c)
	if !ok {
		return
	}

	if !models.Can(actor, models.ActionTransitionStatus, issue) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to change issue status"})
		return
	}

	if err := issue.TransitionStatus(models.IssueStatus(input.Status), actor.ID, input.Comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	update := bson.M{
		"status":        issue.Status,
		"statusHistory": issue.StatusHistory,
		"updatedAt":     issue.UpdatedAt,
	}
	if issue.ActualResolutionDate != nil {
		update["actualResolutionDate"] = issue.ActualResolutionDate
	}

	if _, err := config.GetCollection("issues").UpdateOne(ctx, bson.M{"_id": issue.ID}, bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update issue status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Issue status updated successfully",
		"data":    issue,
	})
}

// DeleteIssue removes an issue; allowed for the reporter or an admin
func DeleteIssue(c *gin.Context) {
	actor := currentActor(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, ok := issueFromPath(ctx, c)
	if !ok {
		return
	}

	if !models.Can(actor, models.ActionDeleteIssue, issue) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this issue"})
		return
	}

	if _, err := config.GetCollection("issues").DeleteOne(ctx, bson.M{"_id": issue.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete issue"})
		return
	}

	// Best-effort cleanup of the reporter's back-reference.
	_, _ = config.GetCollection("users").UpdateOne(ctx,
		bson.M{"_id": issue.ReportedBy},
		bson.M{"$pull": bson.M{"issuesReported": issue.ID}})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue deleted successfully"})
}

// VoteOnIssue casts or switches the caller's vote on an issue
func VoteOnIssue(c *gin.Context) {
	actor := currentActor(c)
	if actor.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		VoteType string `json:"voteType" binding:"required,votetype"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vote type must be \"up\" or \"down\""})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid issue ID"})
		return
	}

	// Concurrent votes by the same user must serialize; the per-issue lock
	// keeps the read-modify-write safe.
	unlock := models.LockIssue(issueID)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, ok := issueFromPath(ctx, c)
	if !ok {
		return
	}

	voteType := models.VoteType(input.VoteType)
	outcome, err := issue.ApplyVote(actor.ID, voteType)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateVote) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		}
		return
	}

	_, err = config.GetCollection("issues").UpdateOne(ctx,
		bson.M{"_id": issue.ID},
		bson.M{"$set": bson.M{"votes": issue.Votes, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cast vote"})
		return
	}

	// Best-effort secondary index on the voter, eventually consistent with
	// the issue's own voter list.
	userCollection := config.GetCollection("users")
	if _, err := userCollection.UpdateOne(ctx,
		bson.M{"_id": actor.ID},
		bson.M{"$pull": bson.M{"issuesVoted": bson.M{"issue": issue.ID}}}); err != nil {
		log.Println("Error clearing voter back-reference:", err)
	}
	if _, err := userCollection.UpdateOne(ctx,
		bson.M{"_id": actor.ID},
		bson.M{"$addToSet": bson.M{"issuesVoted": models.VotedIssue{Issue: issue.ID, VoteType: voteType}}}); err != nil {
		log.Println("Error updating voter back-reference:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": string(outcome),
		"data": gin.H{
			"upvotes":    issue.Votes.Upvotes,
			"downvotes":  issue.Votes.Downvotes,
			"totalVotes": issue.Votes.Upvotes + issue.Votes.Downvotes,
			"userVote":   voteType,
		},
	})
}

// AddComment appends a comment to an issue's discussion
func AddComment(c *gin.Context) {
	actor := currentActor(c)
	if actor.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var input struct {
		Message string `json:"message" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Comment text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, ok := issueFromPath(ctx, c)
	if !ok {
		return
	}

	comment, err := issue.AddComment(actor.ID, input.Message, actor.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := config.GetCollection("issues").UpdateOne(ctx,
		bson.M{"_id": issue.ID},
		bson.M{"$push": bson.M{"comments": comment}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

// GetMyIssues lists issues reported by the authenticated user
func GetMyIssues(c *gin.Context) {
	actor := currentActor(c)
	if actor.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"reportedBy": actor.ID}
	if status := c.Query("status"); status != "" && status != "all" {
		filter["status"] = status
	}

	page := authUtils.GetPaginationParams(c)
	issueCollection := config.GetCollection("issues")

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count issues"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(int64(page.Limit))

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(issues),
		"total":       totalCount,
		"totalPages":  authUtils.TotalPages(totalCount, page.Limit),
		"currentPage": page.Page,
		"data":        annotateIssues(issues, actor),
	})
}

// GetIssueStats returns aggregate counts over all issues
func GetIssueStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")

	groupBy := func(field string) ([]bson.M, error) {
		cursor, err := issueCollection.Aggregate(ctx, []bson.M{
			{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
			{"$sort": bson.M{"count": -1}},
		})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			return nil, err
		}
		return results, nil
	}

	byStatus, err := groupBy("status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get status stats"})
		return
	}
	byCategory, err := groupBy("category")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get category stats"})
		return
	}
	byPriority, err := groupBy("priority")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get priority stats"})
		return
	}

	var totalIssues int64
	statusCounts := map[string]int64{}
	for _, entry := range byStatus {
		name, _ := entry["_id"].(string)
		var count int64
		switch v := entry["count"].(type) {
		case int32:
			count = int64(v)
		case int64:
			count = v
		}
		statusCounts[name] = count
		totalIssues += count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"overall": gin.H{
				"totalIssues":      totalIssues,
				"reportedIssues":   statusCounts[string(models.StatusReported)],
				"inReviewIssues":   statusCounts[string(models.StatusInReview)],
				"inProgressIssues": statusCounts[string(models.StatusInProgress)],
				"resolvedIssues":   statusCounts[string(models.StatusResolved)],
				"closedIssues":     statusCounts[string(models.StatusClosed)],
				"rejectedIssues":   statusCounts[string(models.StatusRejected)],
			},
			"byStatus":   byStatus,
			"byCategory": byCategory,
			"byPriority": byPriority,
		},
	})
}

// GetTrendingIssues ranks issues within a time window by votes, recency or
// controversy
func GetTrendingIssues(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	window := models.TrendingWindow(c.DefaultQuery("timeRange", "week"))
	sortBy := models.TrendingSort(c.DefaultQuery("sortBy", "votes"))

	actor := currentActor(c)
	cacheKey := fmt.Sprintf("trending:%s:%s:%d", window, sortBy, limit)

	// Anonymous responses carry no per-user annotations, so they are safe
	// to share from the cache.
	if actor.Anonymous() && config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if cutoff, bounded := models.WindowCutoff(window, time.Now()); bounded {
		filter["createdAt"] = bson.M{"$gte": cutoff}
	}

	cursor, err := config.GetCollection("issues").Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode issues"})
		return
	}

	ranked := models.RankIssues(issues, window, sortBy, limit)
	if !actor.Anonymous() {
		models.AnnotateUserVotes(ranked, actor.ID)
	}

	payload := gin.H{
		"success": true,
		"count":   len(ranked),
		"data": gin.H{
			"issues":    ranked,
			"timeRange": window,
			"sortBy":    sortBy,
			"limit":     limit,
		},
	}

	if actor.Anonymous() && config.RedisClient != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := config.RedisClient.Set(config.Ctx, cacheKey, raw, time.Minute).Err(); err != nil {
				log.Println("Error caching trending response:", err)
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
