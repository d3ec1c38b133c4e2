// File: internal/session/model.go
package session

import "time"

// Record is the single-row credential cache. It lets the app decide at launch
// whether someone was signed in last time without a network round trip; it is
// not an authentication source and never holds tokens.
type Record struct {
	ID         uint      `gorm:"primaryKey"`
	UserUID    string    `gorm:"column:user_uid"`
	UserEmail  string    `gorm:"column:user_email"`
	IsLoggedIn bool      `gorm:"column:is_logged_in"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the GORM table name.
func (Record) TableName() string {
	return "session_cache"
}
