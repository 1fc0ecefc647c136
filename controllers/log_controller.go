package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
)

type LogController struct {
	logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{logs: logs}
}

// GET /api/logs/recent/:n (admin)
func (ctrl *LogController) Recent(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid n"})
		return
	}
	logs, err := ctrl.logs.Recent(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GET /api/logs/count (admin)
func (ctrl *LogController) Count(c *gin.Context) {
	count, err := ctrl.logs.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
