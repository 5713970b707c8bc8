package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/routine"
)

type routineRequest struct {
	Day        string `json:"day" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Teacher    string `json:"teacher"`
	TeacherID  string `json:"teacherId"`
	Department string `json:"department" binding:"required"`
	Section    string `json:"section" binding:"required"`
}

// ListRoutines returns all routine items sorted by day and time slot.
func (h *Handler) ListRoutines(c *gin.Context) {
	routines, err := h.routines.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, routines)
}

// CreateRoutine adds one weekly class session.
func (h *Handler) CreateRoutine(c *gin.Context) {
	var req routineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rt, err := h.routines.Create(c.Request.Context(), routine.CreateInput{
		Day:        req.Day,
		Time:       req.Time,
		Subject:    req.Subject,
		Teacher:    req.Teacher,
		TeacherID:  req.TeacherID,
		Department: req.Department,
		Section:    req.Section,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}
