package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validIssue() *Issue {
	return &Issue{
		ID:          primitive.NewObjectID(),
		Title:       "Pothole on Main Street",
		Description: "Large pothole causing traffic issues near the crossing",
		Category:    RoadsTransport,
		Priority:    PriorityMedium,
		Status:      StatusReported,
		Location:    NewGeoPoint(-74.006, 40.7128),
		Address:     Address{City: "New York"},
		ReportedBy:  primitive.NewObjectID(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestIssueValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Issue)
		wantErr bool
	}{
		{"valid", func(i *Issue) {}, false},
		{"missing title", func(i *Issue) { i.Title = "" }, true},
		{"missing city", func(i *Issue) { i.Address.City = "" }, true},
		{"bad category", func(i *Issue) { i.Category = "trash-talk" }, true},
		{"bad priority", func(i *Issue) { i.Priority = "asap" }, true},
		{"longitude out of range", func(i *Issue) { i.Location.Coordinates[0] = 181 }, true},
		{"latitude out of range", func(i *Issue) { i.Location.Coordinates[1] = -90.5 }, true},
		{"boundary coordinates", func(i *Issue) { i.Location = NewGeoPoint(-180, 90) }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issue := validIssue()
			tc.mutate(issue)
			err := issue.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCoordinatesRoundTrip(t *testing.T) {
	issue := validIssue()
	require.Equal(t, [2]float64{-74.006, 40.7128}, issue.Location.Coordinates)
}

func TestTransitionStatus_AppendsPreviousStatus(t *testing.T) {
	issue := validIssue()
	admin := primitive.NewObjectID()

	require.NoError(t, issue.TransitionStatus(StatusInReview, admin, "picked up"))

	require.Equal(t, StatusInReview, issue.Status)
	require.Len(t, issue.StatusHistory, 1)
	require.Equal(t, StatusReported, issue.StatusHistory[0].Status)
	require.Equal(t, admin, issue.StatusHistory[0].ChangedBy)
	require.Equal(t, "picked up", issue.StatusHistory[0].Comment)
	require.False(t, issue.StatusHistory[0].ChangedAt.IsZero())
}

func TestTransitionStatus_OneHistoryEntryPerCall(t *testing.T) {
	issue := validIssue()
	admin := primitive.NewObjectID()

	steps := []IssueStatus{StatusInReview, StatusInProgress, StatusResolved, StatusClosed}
	for idx, next := range steps {
		prev := issue.Status
		require.NoError(t, issue.TransitionStatus(next, admin, ""))
		require.Len(t, issue.StatusHistory, idx+1)
		require.Equal(t, prev, issue.StatusHistory[idx].Status)
	}
}

func TestTransitionStatus_RejectsIllegalMoves(t *testing.T) {
	admin := primitive.NewObjectID()

	tests := []struct {
		name string
		from IssueStatus
		to   IssueStatus
	}{
		{"skip review", StatusReported, StatusInProgress},
		{"straight to resolved", StatusReported, StatusResolved},
		{"reversal", StatusResolved, StatusReported},
		{"closed is terminal", StatusClosed, StatusInReview},
		{"rejected is terminal", StatusRejected, StatusReported},
		{"self transition", StatusInReview, StatusInReview},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issue := validIssue()
			issue.Status = tc.from
			err := issue.TransitionStatus(tc.to, admin, "")
			require.ErrorIs(t, err, ErrInvalidTransition)
			require.Empty(t, issue.StatusHistory)
			require.Equal(t, tc.from, issue.Status)
		})
	}
}

func TestTransitionStatus_RejectedFromAnyNonTerminal(t *testing.T) {
	admin := primitive.NewObjectID()
	for _, from := range []IssueStatus{StatusReported, StatusInReview, StatusInProgress, StatusResolved} {
		issue := validIssue()
		issue.Status = from
		require.NoError(t, issue.TransitionStatus(StatusRejected, admin, "not actionable"))
		require.Equal(t, StatusRejected, issue.Status)
	}
}

func TestTransitionStatus_ResolutionDateStampedOnce(t *testing.T) {
	issue := validIssue()
	admin := primitive.NewObjectID()

	require.Nil(t, issue.ActualResolutionDate)

	require.NoError(t, issue.TransitionStatus(StatusInReview, admin, ""))
	require.NoError(t, issue.TransitionStatus(StatusInProgress, admin, ""))
	require.NoError(t, issue.TransitionStatus(StatusResolved, admin, ""))
	require.NotNil(t, issue.ActualResolutionDate)

	first := *issue.ActualResolutionDate

	// A later excursion back through the workflow must not refresh the
	// stamp.
	issue.Status = StatusInProgress
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, issue.TransitionStatus(StatusResolved, admin, ""))
	require.Equal(t, first, *issue.ActualResolutionDate)
}

func TestAddComment(t *testing.T) {
	issue := validIssue()
	author := primitive.NewObjectID()

	comment, err := issue.AddComment(author, "crew dispatched", RoleAdmin)
	require.NoError(t, err)
	require.True(t, comment.IsOfficial)
	require.Len(t, issue.Comments, 1)

	comment, err = issue.AddComment(author, "still broken", RoleUser)
	require.NoError(t, err)
	require.False(t, comment.IsOfficial)
	require.Len(t, issue.Comments, 2)

	_, err = issue.AddComment(author, "", RoleUser)
	require.ErrorIs(t, err, ErrValidation)
}
