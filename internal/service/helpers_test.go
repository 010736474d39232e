package service_test

import (
	"testing"

	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/internal/repository/mocks"
	"github.com/heironeous/microblog/internal/repository/postgres"
	"github.com/heironeous/microblog/internal/repository/redisrepo"
	"github.com/heironeous/microblog/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func zaptestLogger() *zap.Logger {
	return zap.NewNop()
}

type testMocks struct {
	users     *mocks.UserRepository
	posts     *mocks.PostRepository
	followers *mocks.FollowerRepository
	redis     *mocks.RedisDefault
}

func newTestService(t *testing.T) (*service.Service, *testMocks) {
	t.Helper()

	m := &testMocks{
		users:     new(mocks.UserRepository),
		posts:     new(mocks.PostRepository),
		followers: new(mocks.FollowerRepository),
		redis:     new(mocks.RedisDefault),
	}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:     m.users,
			Post:     m.posts,
			Follower: m.followers,
		},
		Redis: &redisrepo.RedisRepository{Default: m.redis},
	}

	return service.New(zap.NewNop(), repo, nil), m
}

func (m *testMocks) expectCacheMiss() {
	m.redis.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", redis.Nil))
	m.redis.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func (m *testMocks) expectCacheDrop() {
	m.redis.On("Del", mock.Anything, mock.Anything).Return(redis.NewIntResult(0, nil))
}

func (m *testMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.users.AssertExpectations(t)
	m.posts.AssertExpectations(t)
	m.followers.AssertExpectations(t)
}
