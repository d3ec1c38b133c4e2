// File: internal/auth/model.go
package auth

// SessionRequest is the sign-in request body. The ID token comes from the
// client's identity provider sign-in.
type SessionRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// SessionResponse is returned after a successful sign-in.
type SessionResponse struct {
	Profile         interface{} `json:"profile"`
	Created         bool        `json:"created"`
	InheritedPoints int64       `json:"inherited_points"`
}

// CachedSessionResponse describes the last cached credentials for the
// app-start screen choice.
type CachedSessionResponse struct {
	UserUID    string `json:"user_uid"`
	UserEmail  string `json:"user_email"`
	IsLoggedIn bool   `json:"is_logged_in"`
}
