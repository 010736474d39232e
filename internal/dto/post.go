package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
)

type CreatePostDto struct {
	Body string `json:"body" binding:"required,max=140"`
}

type GetPostDto struct {
	ID             uuid.UUID `json:"id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func GetPostDtoFromFullPost(post model.FullPost) *GetPostDto {
	return &GetPostDto{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.AuthorUsername,
		Body:           post.Body,
		CreatedAt:      post.CreatedAt,
	}
}

func GetPostDtosFromFullPosts(posts []*model.FullPost) []*GetPostDto {
	dtos := make([]*GetPostDto, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, GetPostDtoFromFullPost(*post))
	}
	return dtos
}
