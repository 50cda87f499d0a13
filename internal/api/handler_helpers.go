package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/response"
)

// HandleError is the single place failures turn into responses: the status
// and plain-text body come from response.Classify.
func HandleError(c *gin.Context, logger internal.Logger, err error) {
	requestID := c.GetString("request_id")
	status, msg := response.Classify(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("[request_id=%s] %s %s: %v", requestID, c.Request.Method, c.Request.URL.Path, err)
	} else {
		logger.Warnf("[request_id=%s] %s %s: %v", requestID, c.Request.Method, c.Request.URL.Path, err)
	}
	if c.Writer.Written() {
		return
	}
	c.String(status, msg)
}

// HandleText sends a 200 plain-text reply.
func HandleText(c *gin.Context, logger internal.Logger, msg string) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] %s", requestID, msg)
	c.String(http.StatusOK, msg)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Debugf("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, data)
}

// bindBody decodes a JSON or form body. An empty body is not an error; the
// request validation reports the missing fields instead.
func bindBody(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return internal.BadRequest("Invalid request body", err)
	}
	return nil
}
