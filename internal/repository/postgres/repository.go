package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.FullUser, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	FindLatest(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
	Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
}

type Follower interface {
	Follow(ctx context.Context, edge model.Follower) error
	Unfollow(ctx context.Context, edge model.Follower) error
	IsFollowing(ctx context.Context, edge model.Follower) (bool, error)
	FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
}

type PostgresRepository struct {
	User
	Post
	Follower
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User:     newUserRepo(db),
		Post:     newPostRepo(db),
		Follower: newFollowerRepo(db),
	}
}
