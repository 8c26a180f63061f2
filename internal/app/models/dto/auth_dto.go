package dto

import "github.com/ecetin/edushare/internal/app/models"

// RegisterRequest carries a registration form submission. Requests bind from
// either form fields or JSON.
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role" binding:"required"`
}

// RegisterResponse is returned after a successful registration. The account
// stays unusable until an admin approves it.
type RegisterResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string          `json:"accessToken"`
	RefreshToken     string          `json:"refreshToken"`
	ExpiresIn        int             `json:"expiresIn"`
	RefreshExpiresIn int             `json:"refreshExpiresIn"`
	TokenType        string          `json:"tokenType"`
	User             *UserProfile    `json:"user"`
	Role             models.RoleType `json:"role"`
}

// RefreshRequest carries a refresh token rotation request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" binding:"required"`
}

// UserProfile is the public view of a user record
type UserProfile struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Role       models.RoleType `json:"role"`
	IsApproved bool            `json:"isApproved"`
}

// NewUserProfile builds a profile view from a user model
func NewUserProfile(user *models.User) *UserProfile {
	return &UserProfile{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.RoleType,
		IsApproved: user.IsApproved,
	}
}
