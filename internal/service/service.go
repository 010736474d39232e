package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/rabbitmq"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/pkg/utils"
	"go.uber.org/zap"
)

type Auth interface {
	Register(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, *utils.JWTPair, error)
	SignIn(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, *utils.JWTPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error)
	FindByUsername(ctx context.Context, username string) (*dto.GetUserDto, error)
	UpdateByUsername(ctx context.Context, actor model.User, username string, updateDto dto.UpdateUserDto) error
	Follow(ctx context.Context, actor model.User, targetID uuid.UUID) error
	Unfollow(ctx context.Context, actor model.User, targetID uuid.UUID) error
	IsFollowing(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (bool, error)
	FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID)
}

type Post interface {
	Create(ctx context.Context, author model.User, createPostDto dto.CreatePostDto) (*dto.GetPostDto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.GetPostDto, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*dto.GetPostDto, error)
	Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.GetPostDto, error)
	Explore(ctx context.Context, limit int, offset int) ([]*dto.GetPostDto, error)
}

type Service struct {
	Auth
	User
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn) *Service {
	return &Service{
		Auth: newAuthService(logger, repo, rabbitmq),
		User: newUserService(logger, repo),
		Post: newPostService(logger, repo),
	}
}
