package controllers

import (
	"strconv"

	"frontdesk-backend/apperror"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Newf(apperror.KindValidation, "invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryUint(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
