package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch UserRole(r) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// VotedIssue is the user-side back-reference of a cast vote. Best-effort
// secondary index, may lag behind the issue's own voter list.
type VotedIssue struct {
	Issue    primitive.ObjectID `bson:"issue" json:"issue"`
	VoteType VoteType           `bson:"voteType" json:"voteType"`
}

type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password,omitempty" json:"-"`
	Role           UserRole             `bson:"role" json:"role"`
	Active         bool                 `bson:"active" json:"active"`
	IssuesReported []primitive.ObjectID `bson:"issuesReported,omitempty" json:"issuesReported,omitempty"`
	IssuesVoted    []VotedIssue         `bson:"issuesVoted,omitempty" json:"issuesVoted,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
