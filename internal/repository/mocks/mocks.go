// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	var created *model.User
	if args.Get(0) != nil {
		created = args.Get(0).(*model.User)
	}
	return created, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	args := m.Called(ctx, id)
	var user *model.FullUser
	if args.Get(0) != nil {
		user = args.Get(0).(*model.FullUser)
	}
	return user, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	args := m.Called(ctx, username)
	var user *model.FullUser
	if args.Get(0) != nil {
		user = args.Get(0).(*model.FullUser)
	}
	return user, args.Error(1)
}

func (m *UserRepository) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	var created *model.Post
	if args.Get(0) != nil {
		created = args.Get(0).(*model.Post)
	}
	return created, args.Error(1)
}

func (m *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error) {
	args := m.Called(ctx, id)
	var post *model.FullPost
	if args.Get(0) != nil {
		post = args.Get(0).(*model.FullPost)
	}
	return post, args.Error(1)
}

func (m *PostRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	args := m.Called(ctx, authorID, limit, offset)
	var posts []*model.FullPost
	if args.Get(0) != nil {
		posts = args.Get(0).([]*model.FullPost)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) FindLatest(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	args := m.Called(ctx, limit, offset)
	var posts []*model.FullPost
	if args.Get(0) != nil {
		posts = args.Get(0).([]*model.FullPost)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	args := m.Called(ctx, userID, limit, offset)
	var posts []*model.FullPost
	if args.Get(0) != nil {
		posts = args.Get(0).([]*model.FullPost)
	}
	return posts, args.Error(1)
}

type FollowerRepository struct {
	mock.Mock
}

func (m *FollowerRepository) Follow(ctx context.Context, edge model.Follower) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *FollowerRepository) Unfollow(ctx context.Context, edge model.Follower) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *FollowerRepository) IsFollowing(ctx context.Context, edge model.Follower) (bool, error) {
	args := m.Called(ctx, edge)
	return args.Bool(0), args.Error(1)
}

func (m *FollowerRepository) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	args := m.Called(ctx, userID, limit, offset)
	var followers []*model.FullFollower
	if args.Get(0) != nil {
		followers = args.Get(0).([]*model.FullFollower)
	}
	return followers, args.Error(1)
}

func (m *FollowerRepository) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	args := m.Called(ctx, userID, limit, offset)
	var following []*model.FullFollower
	if args.Get(0) != nil {
		following = args.Get(0).([]*model.FullFollower)
	}
	return following, args.Error(1)
}

// RedisDefault mocks the redisrepo.Default cache wrapper.
type RedisDefault struct {
	mock.Mock
}

func (m *RedisDefault) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *RedisDefault) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *RedisDefault) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *RedisDefault) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}
