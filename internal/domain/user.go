package domain

import "time"

// User owns a diary. DisplayName and HeaderID are printed in the report
// header.
type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	HeaderID    string
	CreatedAt   time.Time
}

// HeaderName is the name printed on reports, falling back to the username.
func (u *User) HeaderName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
