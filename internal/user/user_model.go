package user

import "gorm.io/gorm"

// User is a club member. Players referenced by team rosters and ball events
// are users; all scoring figures are derived from the event log, never stored
// here.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
}
