package session

import "time"

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// Preferences holds the user-tunable settings. Missing fields fall back to
// the defaults on login.
type Preferences struct {
	Units         string `json:"units"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Units:         "metric",
		Theme:         "dark",
		Notifications: true,
	}
}

// Goals is a free-form training goal record kept on the user snapshot.
type Goals struct {
	WeeklyWorkouts int     `json:"weeklyWorkouts"`
	TargetWeight   float64 `json:"targetWeight"`
	Notes          string  `json:"notes"`
}

type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Preferences Preferences `json:"preferences"`
	Goals       Goals       `json:"goals"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// IsAdmin is derived strictly from the role, nothing else.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
