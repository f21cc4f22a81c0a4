package handler

import (
	"net/http"

	"event-registration-api/config"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
// {success, message, data?, errors?}.

func successResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func createdResponse(c *gin.Context, message string, data interface{}) {
	successResponse(c, http.StatusCreated, message, data)
}

func errorResponse(c *gin.Context, status int, message string, errs interface{}) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if errs != nil {
		body["errors"] = errs
	}
	c.JSON(status, body)
}

func validationErrorResponse(c *gin.Context, errs map[string][]string) {
	errorResponse(c, http.StatusUnprocessableEntity, "The given data was invalid.", errs)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message, nil)
}

func internalErrorResponse(c *gin.Context, message string, err error) {
	errorResponse(c, http.StatusInternalServerError, message, debugDetail(err))
}

// debugDetail exposes the underlying error only when APP_DEBUG is set;
// callers otherwise get the generic message alone.
func debugDetail(err error) interface{} {
	if err == nil {
		return nil
	}
	if config.AppConfig != nil && config.AppConfig.Server.Debug {
		return err.Error()
	}
	return nil
}
