package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/identity"
)

// UserInfo is the user view returned by auth and user operations
type UserInfo struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Role          identity.Role `json:"role"`
	Active        bool          `json:"active"`
	EmailVerified bool          `json:"email_verified"`
	CreatedAt     time.Time     `json:"created_at"`
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// SignInResult carries the issued tokens and the signed-in user
type SignInResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// SignUpInput carries the fields for creating an account
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     identity.Role
}

// UserList is a page of users with the total count
type UserList struct {
	Users []UserInfo
	Total int64
}
