package domain

// User is the profile of the authenticated API user.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}
