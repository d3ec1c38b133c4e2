// File: internal/submission/model.go
package submission

import "time"

// StatusPending is the initial status of every submission. Review happens
// outside the app, directly against the document store.
const StatusPending = "Pending"

// Submission records a completed challenge awaiting review. PhotoURL points at
// the already-uploaded public object; the document is only written after the
// upload succeeded.
type Submission struct {
	ID             string    `firestore:"-" json:"id"`
	UserUID        string    `firestore:"userUid" json:"user_uid"`
	ChallengeID    string    `firestore:"challengeId" json:"challenge_id"`
	ChallengeTitle string    `firestore:"challengeTitle" json:"challenge_title"`
	Points         int64     `firestore:"points" json:"points"`
	PhotoURL       string    `firestore:"photoUrl" json:"photo_url"`
	Status         string    `firestore:"status" json:"status"`
	Timestamp      time.Time `firestore:"timestamp" json:"timestamp"`
}
