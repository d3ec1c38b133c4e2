// File: internal/challenge/model.go
package challenge

// Challenge is an eco-action users can complete for points. Challenges are
// read-only to the app; the catalogue is managed directly in the document store.
type Challenge struct {
	ID          string `firestore:"-" json:"id"`
	Title       string `firestore:"title" json:"title"`
	Points      int64  `firestore:"points" json:"points"`
	Description string `firestore:"desc" json:"desc"`
}
