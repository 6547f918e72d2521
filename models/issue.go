package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	RoadsTransport IssueCategory = "roads-transport"
	WaterSupply    IssueCategory = "water-supply"
	Electricity    IssueCategory = "electricity"
	Sanitation     IssueCategory = "sanitation"
	PublicSafety   IssueCategory = "public-safety"
	HealthServices IssueCategory = "health-services"
	Education      IssueCategory = "education"
	Environment    IssueCategory = "environment"
	Infrastructure IssueCategory = "infrastructure"
	OtherCategory  IssueCategory = "other"
)

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	switch IssueCategory(c) {
	case RoadsTransport, WaterSupply, Electricity, Sanitation, PublicSafety,
		HealthServices, Education, Environment, Infrastructure, OtherCategory:
		return true
	}
	return false
}

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
	PriorityUrgent IssuePriority = "urgent"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch IssuePriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PriorityRank maps priorities onto a fixed sort order, urgent highest.
func PriorityRank(p IssuePriority) int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IssueStatus enum
type IssueStatus string

const (
	StatusReported   IssueStatus = "reported"
	StatusInReview   IssueStatus = "in-review"
	StatusInProgress IssueStatus = "in-progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
	StatusRejected   IssueStatus = "rejected"
)

// ValidStatus reports whether s is one of the workflow states.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusReported, StatusInReview, StatusInProgress, StatusResolved,
		StatusClosed, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s IssueStatus) Terminal() bool {
	return s == StatusClosed || s == StatusRejected
}

// legalTransitions is the workflow table: each state advances along
// reported -> in-review -> in-progress -> resolved -> closed, and any
// non-terminal state may be rejected.
var legalTransitions = map[IssueStatus][]IssueStatus{
	StatusReported:   {StatusInReview, StatusRejected},
	StatusInReview:   {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {StatusClosed, StatusRejected},
}

// CanTransition reports whether the workflow allows from -> to.
func CanTransition(from, to IssueStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Address is the postal address of the reported location.
type Address struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	Area     string `bson:"area,omitempty" json:"area,omitempty"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode  string `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

// ImageRef references an uploaded image in the blob store. Only the
// reference is stored, never the bytes.
type ImageRef struct {
	Filename string `bson:"filename" json:"filename"`
	Path     string `bson:"path" json:"path"`
	Mimetype string `bson:"mimetype" json:"mimetype"`
	Size     int64  `bson:"size" json:"size"`
}

// Comment is an append-only discussion entry. IsOfficial is true iff the
// author's role was admin at the time of posting.
type Comment struct {
	User       primitive.ObjectID `bson:"user" json:"user"`
	Message    string             `bson:"message" json:"message"`
	IsOfficial bool               `bson:"isOfficial" json:"isOfficial"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// StatusChange is one immutable history entry, recording the status the
// issue held *before* the change.
type StatusChange struct {
	Status    IssueStatus        `bson:"status" json:"status"`
	ChangedBy primitive.ObjectID `bson:"changedBy" json:"changedBy"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	ChangedAt time.Time          `bson:"changedAt" json:"changedAt"`
}

// Issue is the aggregate root: votes, comments and status history are
// embedded so every mutation is a single-document write.
type Issue struct {
	ID                      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title                   string              `bson:"title" json:"title"`
	Description             string              `bson:"description" json:"description"`
	Category                IssueCategory       `bson:"category" json:"category"`
	Priority                IssuePriority       `bson:"priority" json:"priority"`
	Status                  IssueStatus         `bson:"status" json:"status"`
	Location                GeoPoint            `bson:"location" json:"location"`
	Address                 Address             `bson:"address" json:"address"`
	Images                  []ImageRef          `bson:"images,omitempty" json:"images,omitempty"`
	Tags                    []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Votes                   Votes               `bson:"votes" json:"votes"`
	Comments                []Comment           `bson:"comments" json:"comments"`
	StatusHistory           []StatusChange      `bson:"statusHistory" json:"statusHistory"`
	ReportedBy              primitive.ObjectID  `bson:"reportedBy" json:"reportedBy"`
	AssignedTo              *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ViewCount               int64               `bson:"viewCount" json:"viewCount"`
	EstimatedResolutionDate *time.Time          `bson:"estimatedResolutionDate,omitempty" json:"estimatedResolutionDate,omitempty"`
	ActualResolutionDate    *time.Time          `bson:"actualResolutionDate,omitempty" json:"actualResolutionDate,omitempty"`
	CreatedAt               time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the aggregate invariants: a known category, priority and
// status, coordinates within [-180,180]x[-90,90] and a non-empty city.
func (i *Issue) Validate() error {
	if i.Title == "" || i.Description == "" {
		return ErrValidation
	}
	if !ValidCategory(string(i.Category)) || !ValidPriority(string(i.Priority)) {
		return ErrValidation
	}
	if !ValidStatus(string(i.Status)) {
		return ErrValidation
	}
	lng, lat := i.Location.Coordinates[0], i.Location.Coordinates[1]
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return ErrValidation
	}
	if i.Address.City == "" {
		return ErrValidation
	}
	return nil
}

// TransitionStatus moves the issue to newStatus, appending a history entry
// that records the previous status, the actor and the server timestamp.
// The first transition into resolved stamps ActualResolutionDate; the stamp
// is never overwritten by later excursions.
func (i *Issue) TransitionStatus(newStatus IssueStatus, changedBy primitive.ObjectID, comment string) error {
	if !ValidStatus(string(newStatus)) {
		return ErrValidation
	}
	if !CanTransition(i.Status, newStatus) {
		return ErrInvalidTransition
	}

	now := time.Now()
	i.StatusHistory = append(i.StatusHistory, StatusChange{
		Status:    i.Status,
		ChangedBy: changedBy,
		Comment:   comment,
		ChangedAt: now,
	})
	i.Status = newStatus

	if newStatus == StatusResolved && i.ActualResolutionDate == nil {
		i.ActualResolutionDate = &now
	}
	i.UpdatedAt = now
	return nil
}

// AddComment appends a discussion entry; authorRole decides the official
// flag. Comments are never edited or removed here.
func (i *Issue) AddComment(author primitive.ObjectID, message string, authorRole UserRole) (Comment, error) {
	if message == "" {
		return Comment{}, ErrValidation
	}
	comment := Comment{
		User:       author,
		Message:    message,
		IsOfficial: authorRole == RoleAdmin,
		CreatedAt:  time.Now(),
	}
	i.Comments = append(i.Comments, comment)
	return comment, nil
}
