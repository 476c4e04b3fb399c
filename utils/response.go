package utils

import (
	"frontdesk-backend/apperror"

	"github.com/gin-gonic/gin"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// ErrorStatus returns the HTTP status for a service error.
func ErrorStatus(err error) int {
	return apperror.HTTPStatus(apperror.KindOf(err))
}

// RespondError maps a service error onto the HTTP response, preserving the
// error kind so the frontend can branch on it.
func RespondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	c.JSON(apperror.HTTPStatus(kind), gin.H{
		"success": false,
		"kind":    string(kind),
		"error":   err.Error(),
	})
}
