package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
)

type CreateUserDto struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

type SignInDto struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=48"`
}

type ForgotPasswordDto struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordDto struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=48"`
}

type UpdateUserDto struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	AboutMe  *string `json:"about_me" binding:"omitempty,max=140"`
}

type RabbitMQResetPasswordDto struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type GetUserDto struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AboutMe   *string   `json:"about_me"`
	AvatarURL string    `json:"avatar_url"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	LastSeen  time.Time `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
}

func GetUserDtoFromFullUser(fullUser model.FullUser) *GetUserDto {
	return &GetUserDto{
		ID:        fullUser.ID,
		Username:  fullUser.Username,
		AboutMe:   fullUser.AboutMe,
		AvatarURL: fullUser.Avatar(128),
		Followers: fullUser.Followers,
		Following: fullUser.Following,
		LastSeen:  fullUser.LastSeen,
		CreatedAt: fullUser.CreatedAt,
	}
}
