package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create(t *testing.T) {
	services, m := newTestService(t)
	ctx := context.Background()

	author := model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	created := &model.Post{ID: uuid.New(), AuthorID: author.ID, Body: "hello world", CreatedAt: time.Now()}

	m.posts.On("Create", mock.Anything, model.Post{AuthorID: author.ID, Body: "hello world"}).Return(created, nil).Once()

	post, err := services.Post.Create(ctx, author, dto.CreatePostDto{Body: "hello world"})

	require.NoError(t, err)
	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, author.Username, post.AuthorUsername)
	assert.Equal(t, "hello world", post.Body)
	m.assertExpectations(t)
}

func TestPostService_FindByID_NotFound(t *testing.T) {
	services, m := newTestService(t)
	ctx := context.Background()

	id := uuid.New()
	m.posts.On("FindByID", mock.Anything, id).Return(nil, pgx.ErrNoRows).Once()

	_, err := services.Post.FindByID(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrPostNotFound))
}

func TestPostService_Feed_PreservesOrder(t *testing.T) {
	services, m := newTestService(t)
	ctx := context.Background()

	userID := uuid.New()
	newest := &model.FullPost{ID: uuid.New(), AuthorID: userID, AuthorUsername: "alice", Body: "newest", CreatedAt: time.Now()}
	oldest := &model.FullPost{ID: uuid.New(), AuthorID: userID, AuthorUsername: "alice", Body: "oldest", CreatedAt: time.Now().Add(-time.Hour)}

	m.posts.On("Feed", mock.Anything, userID, 20, 0).Return([]*model.FullPost{newest, oldest}, nil).Once()

	feed, err := services.Post.Feed(ctx, userID, 20, 0)

	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "newest", feed[0].Body)
	assert.Equal(t, "oldest", feed[1].Body)
	m.assertExpectations(t)
}

func TestPostService_Explore_EmptyIsNotAnError(t *testing.T) {
	services, m := newTestService(t)
	ctx := context.Background()

	m.posts.On("FindLatest", mock.Anything, 20, 0).Return(nil, nil).Once()

	posts, err := services.Post.Explore(ctx, 20, 0)

	require.NoError(t, err)
	assert.Empty(t, posts)
}
