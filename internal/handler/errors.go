package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/service"
)

var (
	errNotAuthorized         = errors.New("user is not authorized")
	errUsernameIsNotProvided = errors.New("please provide username")
	errInvalidUsername       = errors.New("invalid username, it should start with: '@'")
	errInvalidID             = errors.New("provided an invalid ID")
)

// respondError translates service errors into HTTP statuses. Anything not in
// the taxonomy is an internal error; the cause was already logged downstream.
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), dto.NewBasicResponse(false, err.Error()))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
