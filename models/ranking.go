package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrendingWindow filters ranking candidates by creation time, relative to
// the moment of the call rather than calendar boundaries.
type TrendingWindow string

const (
	WindowWeek  TrendingWindow = "week"
	WindowMonth TrendingWindow = "month"
	WindowAll   TrendingWindow = "all"
)

// WindowCutoff returns the earliest createdAt admitted by the window, and
// false for WindowAll (no cutoff).
func WindowCutoff(window TrendingWindow, now time.Time) (time.Time, bool) {
	switch window {
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case WindowMonth:
		return now.Add(-30 * 24 * time.Hour), true
	}
	return time.Time{}, false
}

// TrendingSort enum
type TrendingSort string

const (
	SortVotes         TrendingSort = "votes"
	SortRecent        TrendingSort = "recent"
	SortNewest        TrendingSort = "newest"
	SortControversial TrendingSort = "controversial"
)

// RankedIssue is an issue annotated with its derived ranking scores and,
// for authenticated callers, their own vote direction.
type RankedIssue struct {
	Issue
	VotesTotal       int      `json:"votesTotal"`
	NetVotes         int      `json:"netVotes"`
	ControversyScore float64  `json:"controversyScore"`
	UserVote         VoteType `json:"userVote,omitempty"`
}

// ControversyScore rewards balanced, high-volume disagreement: zero when
// either side is empty, otherwise the min/max ratio scaled by total votes.
// A 10/10 split outranks a 2/2 split, and a lopsided 20/1 split scores near
// zero regardless of volume.
func ControversyScore(upvotes, downvotes int) float64 {
	if upvotes <= 0 || downvotes <= 0 {
		return 0
	}
	minV, maxV := upvotes, downvotes
	if minV > maxV {
		minV, maxV = maxV, minV
	}
	return float64(minV) / float64(maxV) * float64(upvotes+downvotes)
}

// RankIssues filters issues by the trending window, computes the derived
// scores, orders by sortBy and truncates to limit after sorting. Scores are
// computed fresh per call, never stored.
func RankIssues(issues []Issue, window TrendingWindow, sortBy TrendingSort, limit int) []RankedIssue {
	cutoff, bounded := WindowCutoff(window, time.Now())

	ranked := make([]RankedIssue, 0, len(issues))
	for _, issue := range issues {
		if bounded && issue.CreatedAt.Before(cutoff) {
			continue
		}
		ranked = append(ranked, RankedIssue{
			Issue:            issue,
			VotesTotal:       issue.Votes.Upvotes + issue.Votes.Downvotes,
			NetVotes:         issue.Votes.Upvotes - issue.Votes.Downvotes,
			ControversyScore: ControversyScore(issue.Votes.Upvotes, issue.Votes.Downvotes),
		})
	}

	switch sortBy {
	case SortVotes:
		sort.Slice(ranked, func(a, b int) bool {
			if ranked[a].NetVotes != ranked[b].NetVotes {
				return ranked[a].NetVotes > ranked[b].NetVotes
			}
			if ranked[a].Votes.Upvotes != ranked[b].Votes.Upvotes {
				return ranked[a].Votes.Upvotes > ranked[b].Votes.Upvotes
			}
			return ranked[a].CreatedAt.After(ranked[b].CreatedAt)
		})
	case SortControversial:
		sort.Slice(ranked, func(a, b int) bool {
			if ranked[a].ControversyScore != ranked[b].ControversyScore {
				return ranked[a].ControversyScore > ranked[b].ControversyScore
			}
			if ranked[a].VotesTotal != ranked[b].VotesTotal {
				return ranked[a].VotesTotal > ranked[b].VotesTotal
			}
			return ranked[a].CreatedAt.After(ranked[b].CreatedAt)
		})
	default: // recent / newest
		sort.Slice(ranked, func(a, b int) bool {
			return ranked[a].CreatedAt.After(ranked[b].CreatedAt)
		})
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// AnnotateUserVotes stamps each ranked issue with the viewer's own current
// vote direction. Aggregate counts are left untouched.
func AnnotateUserVotes(ranked []RankedIssue, viewer primitive.ObjectID) {
	for idx := range ranked {
		ranked[idx].UserVote = ranked[idx].VoteOf(viewer)
	}
}
