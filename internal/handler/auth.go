package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heironeous/microblog/internal/dto"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.CreateUserDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, tokenPair, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "localhost", true, true)

	c.JSON(http.StatusCreated, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken, User: *user})
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, tokenPair, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "localhost", true, true)

	c.JSON(http.StatusOK, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken, User: *user})
}

func (h *Handler) authRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokenPair, err := h.services.Auth.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "localhost", true, true)

	c.JSON(http.StatusOK, dto.RefreshResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

func (h *Handler) authForgotPassword(c *gin.Context) {
	var input dto.ForgotPasswordDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}

	// Same response whether or not the address has an account.
	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) authResetPassword(c *gin.Context) {
	var input dto.ResetPasswordDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.ResetPassword(c.Request.Context(), input.Token, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
