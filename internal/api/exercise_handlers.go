package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/response"
	"github.com/yourname/exercisetracker/internal/service"
)

func PostExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AddExerciseRequest
		if err := bindBody(c, &req); err != nil {
			HandleError(c, app.Logger(), err)
			return
		}

		ex, user, err := service.AddExercise(c.Request.Context(), app.UserRepo(), app.ExerciseRepo(), &req)
		if errors.Is(err, internal.ErrUserNotFound) {
			HandleText(c, app.Logger(), response.UserNotExist)
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err)
			return
		}

		HandleSuccess(c, app.Logger(), response.Exercise(user, ex))
	}
}

func GetLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LogRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			HandleError(c, app.Logger(), internal.BadRequest("Invalid query", err))
			return
		}

		user, logs, err := service.ExerciseLog(c.Request.Context(), app.UserRepo(), app.ExerciseRepo(), &req)
		if errors.Is(err, internal.ErrUserNotFound) {
			HandleText(c, app.Logger(), response.UnknownUserID)
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err)
			return
		}

		HandleSuccess(c, app.Logger(), response.Log(user, logs))
	}
}
