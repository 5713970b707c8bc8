package student

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrNotFound  = errors.New("student not found")
	ErrInvalidID = errors.New("invalid student id")
	ErrRollTaken = errors.New("a student with this roll number is already registered")
)

// Points comparison operators accepted by search.
const (
	OpGTE = "gte"
	OpLTE = "lte"
	OpEQ  = "eq"
)

// Filter is the resolved search filter. A nil Points disables the points
// comparison entirely.
type Filter struct {
	Department string
	Section    string
	Operator   string
	Points     *int
}

// SearchParams is the raw search input. AttendancePoints arrives as text; an
// empty or non-numeric value disables the points filter even when an
// operator was supplied.
type SearchParams struct {
	Department         string `json:"department"`
	Section            string `json:"section"`
	AttendanceOperator string `json:"attendanceOperator"`
	AttendancePoints   string `json:"attendancePoints"`
}

// AttendanceEntry is one attendance record joined with its routine for
// subject/time display.
type AttendanceEntry struct {
	ID        primitive.ObjectID `json:"id"`
	Date      string             `json:"date"`
	Status    string             `json:"status"`
	Routine   *model.Routine     `json:"routine,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// MessageEntry is one message joined with its sender's name.
type MessageEntry struct {
	ID          primitive.ObjectID `json:"id"`
	Message     string             `json:"message"`
	TeacherName string             `json:"teacherName"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Profile is a student record plus their full history. The client merges the
// two lists into one timeline; the server only sorts each newest-first.
type Profile struct {
	Student              model.Student     `json:"student"`
	AttendanceHistory    []AttendanceEntry `json:"attendanceHistory"`
	Messages             []MessageEntry    `json:"messages"`
	AttendancePercentage int               `json:"attendancePercentage"`
}

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, st model.Student) (model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, id primitive.ObjectID, name, rollNumber, section, department string) (model.Student, error)
	Search(ctx context.Context, f Filter) ([]model.Student, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Student, error)
	AttendanceHistory(ctx context.Context, studentID primitive.ObjectID) ([]AttendanceEntry, error)
	Messages(ctx context.Context, studentID primitive.ObjectID) ([]MessageEntry, error)
}

// Service implements student CRUD, search and the profile view.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a new student record with zero attendance points.
func (s *Service) Create(ctx context.Context, name, rollNumber, section, department string) (model.Student, error) {
	return s.store.Insert(ctx, model.Student{
		Name:       name,
		RollNumber: rollNumber,
		Section:    section,
		Department: department,
	})
}

// List returns all students sorted by name.
func (s *Service) List(ctx context.Context) ([]model.Student, error) {
	return s.store.List(ctx)
}

// Update overwrites a student's editable fields.
func (s *Service) Update(ctx context.Context, id, name, rollNumber, section, department string) (model.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Student{}, ErrInvalidID
	}
	return s.store.Update(ctx, oid, name, rollNumber, section, department)
}

// Search returns students matching the conjunction of the supplied filters,
// sorted by name ascending. Absent filters match any value.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]model.Student, error) {
	f := Filter{Department: p.Department, Section: p.Section}
	if p.AttendanceOperator != "" && p.AttendancePoints != "" {
		if points, err := strconv.Atoi(p.AttendancePoints); err == nil {
			switch p.AttendanceOperator {
			case OpGTE, OpLTE, OpEQ:
				f.Operator = p.AttendanceOperator
				f.Points = &points
			}
		}
	}
	return s.store.Search(ctx, f)
}

// Profile returns the student plus attendance and message history, each
// newest-first, and the overall attendance percentage (0 with no records).
func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Profile{}, ErrInvalidID
	}

	st, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return Profile{}, err
	}
	history, err := s.store.AttendanceHistory(ctx, oid)
	if err != nil {
		return Profile{}, fmt.Errorf("attendance history: %w", err)
	}
	messages, err := s.store.Messages(ctx, oid)
	if err != nil {
		return Profile{}, fmt.Errorf("messages: %w", err)
	}

	present := 0
	for _, entry := range history {
		if entry.Status == model.StatusPresent {
			present++
		}
	}
	pct := 0
	if len(history) > 0 {
		pct = int(math.Round(float64(present) / float64(len(history)) * 100))
	}

	return Profile{
		Student:              st,
		AttendanceHistory:    history,
		Messages:             messages,
		AttendancePercentage: pct,
	}, nil
}
