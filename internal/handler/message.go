package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/auth"
)

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage appends a teacher-to-student note.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	claims, _ := auth.FromContext(c)
	entry, err := h.messages.Send(c.Request.Context(), claims.UserID, c.Param("studentId"), req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
