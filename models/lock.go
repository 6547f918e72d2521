package models

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// issueLocks serializes read-modify-write cycles per issue. Votes and
// status changes on the same issue must not interleave; issues are
// otherwise independent, so there is no global lock.
var issueLocks sync.Map

// LockIssue acquires the mutation lock for the given issue and returns the
// unlock function.
func LockIssue(id primitive.ObjectID) func() {
	mu, _ := issueLocks.LoadOrStore(id, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}
