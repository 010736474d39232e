package handler

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/service"
	"github.com/heironeous/microblog/pkg/utils"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "PUT"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-up", h.authSignUp)
			auth.POST("/sign-in", h.authSignIn)
			auth.POST("/refresh", h.authRefresh)
			auth.POST("/forgot-password", h.authForgotPassword)
			auth.POST("/reset-password", h.authResetPassword)
		}

		users := v1.Group("/users")
		{
			me := users.Group("/@me")
			{
				me.Use(h.authMiddleware)

				me.GET("", h.usersMe)
				me.GET("/followers", h.usersGetFollowers)
				me.GET("/following", h.usersGetFollowing)
			}

			users.GET("/byUsername/:username", h.authMiddleware, h.usernameMiddleware, h.usersGetByUsername)
			users.PATCH("/byUsername/:username", h.authMiddleware, h.usernameMiddleware, h.usersUpdate)
			users.PUT("/follow/:userID", h.authMiddleware, h.usersFollow)
			users.PUT("/unfollow/:userID", h.authMiddleware, h.usersUnfollow)
			users.GET("/isFollowing/:userID", h.authMiddleware, h.usersIsFollowing)
		}

		posts := v1.Group("/posts")
		{
			posts.Use(h.authMiddleware)

			posts.POST("", h.postsCreate)
			posts.GET("/byID/:id", h.postsGetByID)
			posts.GET("/byAuthor/:userID", h.postsGetByAuthor)
			posts.GET("/feed", h.postsFeed)
			posts.GET("/explore", h.postsExplore)
		}
	}

	return r
}

func (h *Handler) getUserDataFromAccessTokenClaims(ctx context.Context, accessToken string) (*model.FullUser, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getUser(c *gin.Context) *model.FullUser {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.FullUser)
	if !ok {
		return nil
	}

	return &user
}

type paginationInput struct {
	Limit  int `form:"limit,default=20" binding:"min=1"`
	Offset int `form:"offset" binding:"min=0"`
}
