package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/utils"
)

// parseIDParam reads the :id route parameter as a uint. On failure it writes
// a 400 response and returns ok=false.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.LogError("Invalid id parameter: %q", idStr)
		utils.BadRequest(c, "Invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
