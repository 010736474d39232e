package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, author model.User, createPostDto dto.CreatePostDto) (*dto.GetPostDto, error) {
	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		AuthorID: author.ID,
		Body:     createPostDto.Body,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post for user(%s) in postgres: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtoFromFullPost(model.FullPost{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: author.Username,
		Body:           post.Body,
		CreatedAt:      post.CreatedAt,
	}), nil
}

func (s *postService) FindByID(ctx context.Context, id uuid.UUID) (*dto.GetPostDto, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtoFromFullPost(*post), nil
}

func (s *postService) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*dto.GetPostDto, error) {
	posts, err := s.repo.Postgres.Post.FindByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts of user(%s) in postgres: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtosFromFullPosts(posts), nil
}

func (s *postService) Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.GetPostDto, error) {
	posts, err := s.repo.Postgres.Post.Feed(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to build feed for user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtosFromFullPosts(posts), nil
}

func (s *postService) Explore(ctx context.Context, limit int, offset int) ([]*dto.GetPostDto, error) {
	posts, err := s.repo.Postgres.Post.FindLatest(ctx, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find latest posts in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtosFromFullPosts(posts), nil
}
