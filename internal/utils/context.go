package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/middleware"
	"github.com/mediavault/mediavault/internal/types"
)

var errNoUser = errors.New("no authenticated user in request context")

// GetCurrentUser reads the user the auth middleware placed in the context.
// Routes outside the protected group have no user and get an error.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return middleware.AuthenticatedUser{}, errNoUser
	}

	user, ok := value.(middleware.AuthenticatedUser)
	if !ok {
		return middleware.AuthenticatedUser{}, errNoUser
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
