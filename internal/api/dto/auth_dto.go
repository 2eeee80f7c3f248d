package dto

// LoginRequest carries one technician login attempt.
type LoginRequest struct {
	Username string `json:"tech_username" form:"tech_username_box"`
	Password string `json:"tech_password" form:"tech_password_box"`
}
