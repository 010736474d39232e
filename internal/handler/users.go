package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
)

func (h *Handler) usersMe(c *gin.Context) {
	user := h.getUser(c)

	c.JSON(http.StatusOK, dto.GetUserDtoFromFullUser(*user))
}

func (h *Handler) usersGetByUsername(c *gin.Context) {
	username := c.GetString("username")

	user, err := h.services.User.FindByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) usersUpdate(c *gin.Context) {
	user := h.getUser(c)
	username := c.GetString("username")

	var input dto.UpdateUserDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.User.UpdateByUsername(c.Request.Context(), model.UserFromFullUser(*user), username, input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) usersFollow(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := h.services.User.Follow(c.Request.Context(), model.UserFromFullUser(*user), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := h.services.User.Unfollow(c.Request.Context(), model.UserFromFullUser(*user), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

type isFollowingResponse struct {
	Ok        bool `json:"ok"`
	Following bool `json:"following"`
}

func (h *Handler) usersIsFollowing(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	following, err := h.services.User.IsFollowing(c.Request.Context(), user.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, isFollowingResponse{Ok: true, Following: following})
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	user := h.getUser(c)

	var input paginationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	followers, err := h.services.User.FindFollowers(c.Request.Context(), user.ID, input.Limit, input.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersGetFollowing(c *gin.Context) {
	user := h.getUser(c)

	var input paginationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	following, err := h.services.User.FindFollowing(c.Request.Context(), user.ID, input.Limit, input.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, following)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	idString := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(idString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return id, true
}
