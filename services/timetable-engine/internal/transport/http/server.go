package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RamCupido/ClaReSys-Project/services/timetable-engine/internal/logic"
)

type checkRequest struct {
	StartTime string           `json:"start_time" binding:"required"`
	EndTime   string           `json:"end_time" binding:"required"`
	Existing  []logic.Interval `json:"existing"`
}

type checkResponse struct {
	HasConflict bool `json:"has_conflict"`
}

// NewRouter exposes the availability check. The verdict is computed from the
// request alone; the engine holds no state of its own.
func NewRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "timetable-engine"})
	})

	r.POST("/api/v1/timetable/check", func(c *gin.Context) {
		var in checkRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conflict, err := logic.CheckOverlap(in.StartTime, in.EndTime, in.Existing)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, checkResponse{HasConflict: conflict})
	})

	return r
}
