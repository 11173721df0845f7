package domain

import "time"

// User represents an authenticated identity in the platform.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name,omitempty"`
	PhotoURL           string     `json:"photo_url,omitempty"`
	PasswordHash       string     `json:"-"`
	PushToken          string     `json:"-"`
	PushTokenUpdatedAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (u *User) HasPushToken() bool {
	return u != nil && u.PushToken != ""
}
