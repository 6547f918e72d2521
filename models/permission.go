package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Action names a privileged operation on an issue or a user record.
type Action string

const (
	ActionUpdateIssue      Action = "issue:update"
	ActionDeleteIssue      Action = "issue:delete"
	ActionTransitionStatus Action = "issue:transition"
	ActionVote             Action = "issue:vote"
	ActionComment          Action = "issue:comment"
	ActionManageUsers      Action = "user:manage"
)

// Actor is the verified identity attached to a request by the auth
// middleware. A zero Actor is anonymous.
type Actor struct {
	ID   primitive.ObjectID
	Role UserRole
}

// Anonymous reports whether the actor carries no verified identity.
func (a Actor) Anonymous() bool {
	return a.ID.IsZero()
}

// Can is the single capability check applied before every privileged
// mutation: admins may do anything, owners may update and delete their own
// issues, and any authenticated user may vote and comment.
func Can(actor Actor, action Action, issue *Issue) bool {
	if actor.Anonymous() {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}

	switch action {
	case ActionVote, ActionComment:
		return true
	case ActionUpdateIssue, ActionDeleteIssue:
		return issue != nil && issue.ReportedBy == actor.ID
	case ActionTransitionStatus, ActionManageUsers:
		// Admin-only; the admin branch above already allowed them.
		return false
	}
	return false
}
