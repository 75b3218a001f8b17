package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.Error(message)
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

func newGenerationErrorResponse(c *gin.Context, statusCode int, code, message string, details map[string]any) {
	logrus.WithField("code", code).Error(message)
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message, Code: code, Details: details})
}
