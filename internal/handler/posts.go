package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), model.UserFromFullUser(*user), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsGetByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	var input paginationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	posts, err := h.services.Post.FindByAuthor(c.Request.Context(), authorID, input.Limit, input.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsFeed(c *gin.Context) {
	user := h.getUser(c)

	var input paginationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	posts, err := h.services.Post.Feed(c.Request.Context(), user.ID, input.Limit, input.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsExplore(c *gin.Context) {
	var input paginationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	posts, err := h.services.Post.Explore(c.Request.Context(), input.Limit, input.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
