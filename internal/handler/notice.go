package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/auth"
)

type noticeRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ListNotices returns all notices newest-first with author names.
func (h *Handler) ListNotices(c *gin.Context) {
	notices, err := h.notices.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

// CreateNotice posts a notice authored by the caller.
func (h *Handler) CreateNotice(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	claims, _ := auth.FromContext(c)
	entry, err := h.notices.Create(c.Request.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteNotice removes a notice; only its author may do so.
func (h *Handler) DeleteNotice(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	if err := h.notices.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "notice removed"})
}
