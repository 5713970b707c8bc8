package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/attendance"
)

type markAttendanceRequest struct {
	RoutineID       string                     `json:"routineId" binding:"required"`
	Date            string                     `json:"date" binding:"required"`
	StudentStatuses []attendance.StudentStatus `json:"studentStatuses" binding:"required"`
}

// MarkAttendance records one class roll for a routine and date.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.attendance.Mark(c.Request.Context(), req.RoutineID, req.Date, req.StudentStatuses); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "attendance marked successfully"})
}
