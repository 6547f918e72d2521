package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteType enum
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// ValidVoteType reports whether v is "up" or "down".
func ValidVoteType(v string) bool {
	return VoteType(v) == VoteUp || VoteType(v) == VoteDown
}

// VoterEntry records one user's vote direction on one issue.
type VoterEntry struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	VoteType VoteType           `bson:"voteType" json:"voteType"`
	VotedAt  time.Time          `bson:"votedAt" json:"votedAt"`
}

// Votes is the embedded vote aggregate of an issue. Upvotes and Downvotes
// are stored redundantly for read performance and must always equal the
// count of voter entries of each type.
type Votes struct {
	Upvotes   int          `bson:"upvotes" json:"upvotes"`
	Downvotes int          `bson:"downvotes" json:"downvotes"`
	Voters    []VoterEntry `bson:"voters" json:"voters"`
}

// VoteOutcome describes what ApplyVote did.
type VoteOutcome string

const (
	VoteRecorded VoteOutcome = "vote recorded"
	VoteSwitched VoteOutcome = "vote switched"
)

// ApplyVote casts voterID's vote on the issue. A user holds at most one
// active vote per issue: a first vote appends a voter entry, re-casting the
// same direction fails with ErrDuplicateVote and changes nothing, and
// casting the opposite direction switches the stored entry in place.
// Callers mutating the same issue concurrently must serialize through
// LockIssue to keep the read-modify-write safe.
func (i *Issue) ApplyVote(voterID primitive.ObjectID, voteType VoteType) (VoteOutcome, error) {
	if voteType != VoteUp && voteType != VoteDown {
		return "", ErrInvalidVoteType
	}

	for idx := range i.Votes.Voters {
		entry := &i.Votes.Voters[idx]
		if entry.User != voterID {
			continue
		}
		if entry.VoteType == voteType {
			return "", ErrDuplicateVote
		}

		// Switch direction: move one count from the old side to the new.
		if entry.VoteType == VoteUp {
			i.Votes.Upvotes--
			i.Votes.Downvotes++
		} else {
			i.Votes.Downvotes--
			i.Votes.Upvotes++
		}
		entry.VoteType = voteType
		entry.VotedAt = time.Now()
		return VoteSwitched, nil
	}

	i.Votes.Voters = append(i.Votes.Voters, VoterEntry{
		User:     voterID,
		VoteType: voteType,
		VotedAt:  time.Now(),
	})
	if voteType == VoteUp {
		i.Votes.Upvotes++
	} else {
		i.Votes.Downvotes++
	}
	return VoteRecorded, nil
}

// VoteOf returns the voter's current direction on the issue, or "" if the
// voter has not voted.
func (i *Issue) VoteOf(voterID primitive.ObjectID) VoteType {
	for _, entry := range i.Votes.Voters {
		if entry.User == voterID {
			return entry.VoteType
		}
	}
	return ""
}

// CountersConsistent checks the stored aggregate counters against the voter
// entries they are derived from.
func (v Votes) CountersConsistent() bool {
	up, down := 0, 0
	for _, entry := range v.Voters {
		switch entry.VoteType {
		case VoteUp:
			up++
		case VoteDown:
			down++
		}
	}
	return v.Upvotes == up && v.Downvotes == down
}
