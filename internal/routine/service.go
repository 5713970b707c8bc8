package routine

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrInvalidDay      = errors.New("day must be a weekday name")
	ErrInvalidID       = errors.New("invalid teacher id")
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, rt model.Routine) (model.Routine, error)
	List(ctx context.Context) ([]model.Routine, error)
	TeacherName(ctx context.Context, id primitive.ObjectID) (string, error)
}

// Service implements routine creation and listing. Routines are immutable
// after creation.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput carries the fields for a new routine item. TeacherID is
// optional; when set, the display name is resolved from the referenced staff
// account and Teacher is ignored.
type CreateInput struct {
	Day        string
	Time       string
	Subject    string
	Teacher    string
	TeacherID  string
	Department string
	Section    string
}

// Create validates and persists one weekly class session.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.Routine, error) {
	if !model.ValidDay(in.Day) {
		return model.Routine{}, ErrInvalidDay
	}

	rt := model.Routine{
		Day:        in.Day,
		Time:       in.Time,
		Subject:    in.Subject,
		Teacher:    in.Teacher,
		Department: in.Department,
		Section:    in.Section,
	}
	if in.TeacherID != "" {
		tid, err := primitive.ObjectIDFromHex(in.TeacherID)
		if err != nil {
			return model.Routine{}, ErrInvalidID
		}
		name, err := s.store.TeacherName(ctx, tid)
		if err != nil {
			return model.Routine{}, err
		}
		rt.TeacherID = &tid
		rt.Teacher = name
	}
	return s.store.Insert(ctx, rt)
}

// List returns all routine items sorted by day, then time slot.
func (s *Service) List(ctx context.Context) ([]model.Routine, error) {
	return s.store.List(ctx)
}
