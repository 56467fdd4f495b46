package dto

// LoginRequest payload for student and admin login. Students identify by
// student_number, admins by username.
type LoginRequest struct {
	StudentNumber string `json:"student_number"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	UseCookie     bool   `json:"use_cookie"`
}

// LoginUser is the identity block returned on successful login.
type LoginUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role"`
}
