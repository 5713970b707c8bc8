package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/student"
)

type studentRequest struct {
	Name       string `json:"name" binding:"required"`
	RollNumber string `json:"rollNumber" binding:"required"`
	Section    string `json:"section" binding:"required"`
	Department string `json:"department" binding:"required"`
}

// ListStudents returns all students sorted by name.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent adds a student record.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	st, err := h.students.Create(c.Request.Context(), req.Name, req.RollNumber, req.Section, req.Department)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent overwrites a student's editable fields.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	st, err := h.students.Update(c.Request.Context(), c.Param("id"), req.Name, req.RollNumber, req.Section, req.Department)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// SearchStudents returns students matching the supplied filters.
func (h *Handler) SearchStudents(c *gin.Context) {
	var params student.SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	students, err := h.students.Search(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// StudentProfile returns one student with attendance and message history.
func (h *Handler) StudentProfile(c *gin.Context) {
	profile, err := h.students.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
