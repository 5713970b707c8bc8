package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/attendance"
	"campushub/internal/auth"
	"campushub/internal/config"
	"campushub/internal/dashboard"
	"campushub/internal/message"
	"campushub/internal/model"
	"campushub/internal/notice"
	"campushub/internal/routine"
	"campushub/internal/student"
	"campushub/internal/user"
)

// Handler maps HTTP requests onto the domain services.
type Handler struct {
	cfg        config.App
	users      *user.Service
	students   *student.Service
	routines   *routine.Service
	attendance *attendance.Service
	dashboard  *dashboard.Service
	messages   *message.Service
	notices    *notice.Service
}

// New wires a handler.
func New(
	cfg config.App,
	users *user.Service,
	students *student.Service,
	routines *routine.Service,
	att *attendance.Service,
	dash *dashboard.Service,
	messages *message.Service,
	notices *notice.Service,
) *Handler {
	return &Handler{
		cfg:        cfg,
		users:      users,
		students:   students,
		routines:   routines,
		attendance: att,
		dashboard:  dash,
		messages:   messages,
		notices:    notices,
	}
}

// Register mounts all API routes under /api.
func (h *Handler) Register(r *gin.Engine) {
	requireAuth := auth.RequireAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
	teacherOnly := auth.RequireRole(model.RoleTeacher)

	api := r.Group("/api")

	api.POST("/auth/register", h.RegisterTeacher)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", requireAuth, h.Me)

	api.POST("/student-auth/register", h.RegisterStudent)
	api.POST("/student-auth/login", h.LoginStudent)

	api.GET("/students", h.ListStudents)
	api.POST("/students", requireAuth, h.CreateStudent)
	api.POST("/students/search", requireAuth, h.SearchStudents)
	api.GET("/students/:id", requireAuth, h.StudentProfile)
	api.PUT("/students/:id", requireAuth, h.UpdateStudent)

	api.GET("/routines", h.ListRoutines)
	api.POST("/routines", requireAuth, h.CreateRoutine)

	api.POST("/attendance", requireAuth, h.MarkAttendance)

	api.GET("/dashboard/stats", requireAuth, h.DashboardStats)

	api.POST("/messages/:studentId", requireAuth, teacherOnly, h.SendMessage)

	api.GET("/notices", requireAuth, h.ListNotices)
	api.POST("/notices", requireAuth, teacherOnly, h.CreateNotice)
	api.DELETE("/notices/:id", requireAuth, teacherOnly, h.DeleteNotice)
}

// fail maps a domain error to a status code. Unclassified errors become a
// generic 500 with the detail logged server-side only.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrRollTaken),
		errors.Is(err, user.ErrInvalidID),
		errors.Is(err, student.ErrRollTaken),
		errors.Is(err, student.ErrInvalidID),
		errors.Is(err, routine.ErrInvalidDay),
		errors.Is(err, routine.ErrInvalidID),
		errors.Is(err, notice.ErrInvalidID),
		errors.Is(err, message.ErrInvalidID),
		errors.Is(err, attendance.ErrInvalidID),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, notice.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, student.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, notice.ErrNotFound),
		errors.Is(err, routine.ErrTeacherNotFound),
		errors.Is(err, message.ErrStudentNotFound),
		errors.Is(err, attendance.ErrRoutineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
}
