package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/response"
	"github.com/yourname/exercisetracker/internal/service"
)

func PostNewUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.NewUserRequest
		if err := bindBody(c, &req); err != nil {
			HandleError(c, app.Logger(), err)
			return
		}

		user, err := service.CreateUser(c.Request.Context(), app.UserRepo(), &req)
		if errors.Is(err, internal.ErrUsernameTaken) {
			HandleText(c, app.Logger(), response.UsernameTaken)
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err)
			return
		}

		HandleSuccess(c, app.Logger(), response.User(user))
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.UserRepo().ListUsers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err)
			return
		}
		HandleSuccess(c, app.Logger(), response.Users(users))
	}
}
