package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/auth"
	"campushub/internal/model"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterTeacher creates a teacher account and returns a signed token.
func (h *Handler) RegisterTeacher(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.users.RegisterTeacher(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, u.ID.Hex(), u.Role, "")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies teacher credentials and returns a signed token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, u.ID.Hex(), u.Role, "")
}

// Me returns the caller's profile, without the password hash.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing bearer token"})
		return
	}

	u, err := h.users.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type studentRegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	RollNumber string `json:"rollNumber" binding:"required"`
	Department string `json:"department" binding:"required"`
	Section    string `json:"section" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
}

// RegisterStudent creates a student login plus its academic record and
// returns a student-role token carrying both ids.
func (h *Handler) RegisterStudent(c *gin.Context) {
	var req studentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	acct, err := h.users.RegisterStudent(c.Request.Context(),
		req.Name, req.RollNumber, req.Department, req.Section, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, acct.StudentUser.ID.Hex(), model.RoleStudent, acct.Student.ID.Hex())
}

// LoginStudent verifies student credentials and returns a signed token.
func (h *Handler) LoginStudent(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	su, err := h.users.LoginStudent(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, su.ID.Hex(), model.RoleStudent, su.Student.Hex())
}

func (h *Handler) respondWithToken(c *gin.Context, status int, userID, role, studentID string) {
	token, err := auth.Issue(userID, role, studentID, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.TokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, gin.H{"token": token.Value, "expiresAt": token.ExpiresAt.Unix()})
}
