package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
)

// ParseIDParam reads a numeric path parameter. On failure it has already responded.
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.InvalidFormat(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
