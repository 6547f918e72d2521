package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCan(t *testing.T) {
	owner := Actor{ID: primitive.NewObjectID(), Role: RoleUser}
	stranger := Actor{ID: primitive.NewObjectID(), Role: RoleUser}
	moderator := Actor{ID: primitive.NewObjectID(), Role: RoleModerator}
	admin := Actor{ID: primitive.NewObjectID(), Role: RoleAdmin}
	anonymous := Actor{}

	issue := &Issue{ReportedBy: owner.ID}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		allow  bool
	}{
		{"anonymous denied everything", anonymous, ActionVote, false},
		{"owner updates own issue", owner, ActionUpdateIssue, true},
		{"stranger cannot update", stranger, ActionUpdateIssue, false},
		{"owner deletes own issue", owner, ActionDeleteIssue, true},
		{"stranger cannot delete", stranger, ActionDeleteIssue, false},
		{"any user votes", stranger, ActionVote, true},
		{"any user comments", stranger, ActionComment, true},
		{"user cannot transition", owner, ActionTransitionStatus, false},
		{"moderator cannot transition", moderator, ActionTransitionStatus, false},
		{"admin transitions", admin, ActionTransitionStatus, true},
		{"admin updates any issue", admin, ActionUpdateIssue, true},
		{"moderator cannot manage users", moderator, ActionManageUsers, false},
		{"admin manages users", admin, ActionManageUsers, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allow, Can(tc.actor, tc.action, issue))
		})
	}
}

func TestLockIssue_SerializesVotes(t *testing.T) {
	issue := &Issue{ID: primitive.NewObjectID()}

	const voters = 50
	errs := make(chan error, voters)
	var wg sync.WaitGroup
	wg.Add(voters)
	for idx := 0; idx < voters; idx++ {
		go func() {
			defer wg.Done()
			unlock := LockIssue(issue.ID)
			defer unlock()
			_, err := issue.ApplyVote(primitive.NewObjectID(), VoteUp)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, voters, issue.Votes.Upvotes)
	require.Len(t, issue.Votes.Voters, voters)
	require.True(t, issue.Votes.CountersConsistent())
}
