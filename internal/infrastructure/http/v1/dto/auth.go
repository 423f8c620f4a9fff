package dto

import (
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
)

// LoginRequest carries operator credentials.
// Field presence is validated by the auth service, not by binding tags,
// so missing fields surface as a 400 with a descriptive message.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the operator payload returned on login.
type UserInfo struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName,omitempty"`
	AccessPages []string `json:"accessPages"`
}

// LoginResponse for POST /api/login.
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// FromLoginResult maps a domain login result to the response envelope.
func FromLoginResult(res *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Success: true,
		Token:   res.Token,
		User: UserInfo{
			Username:    res.User.Username,
			DisplayName: res.User.DisplayName,
			AccessPages: res.User.AccessPages,
		},
	}
}

// CreateUserRequest for POST /api/users.
type CreateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	DisplayName string   `json:"displayName"`
	AccessPages []string `json:"accessPages"`
}

// UserResponse is one account row; the password hash never leaves the server.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	AccessPages []string  `json:"accessPages"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromUser maps a domain user to its API shape.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AccessPages: u.AccessPages,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
	}
}
