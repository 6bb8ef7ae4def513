package models

type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Credentials is the body of both /register and /login. Both keys must be
// present but either may be empty.
type Credentials struct {
	Email    *string `json:"email" binding:"required" example:"jane@example.com"`
	Password *string `json:"password" binding:"required" example:"s3cret"`
}
