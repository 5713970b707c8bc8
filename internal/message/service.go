package message

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrInvalidID       = errors.New("invalid identifier")
	ErrStudentNotFound = errors.New("student not found")
)

// Entry is a stored message with the sender's name populated so the UI can
// display it without a second request.
type Entry struct {
	ID          primitive.ObjectID `json:"id"`
	Teacher     primitive.ObjectID `json:"teacher"`
	TeacherName string             `json:"teacherName"`
	Student     primitive.ObjectID `json:"student"`
	Message     string             `json:"message"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, m model.Message) (model.Message, error)
	StudentExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	TeacherName(ctx context.Context, id primitive.ObjectID) (string, error)
}

// Service implements the append-only messaging flow.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Send appends a message from a teacher to a student.
func (s *Service) Send(ctx context.Context, teacherID, studentID, body string) (Entry, error) {
	tid, err := primitive.ObjectIDFromHex(teacherID)
	if err != nil {
		return Entry{}, ErrInvalidID
	}
	sid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return Entry{}, ErrInvalidID
	}

	exists, err := s.store.StudentExists(ctx, sid)
	if err != nil {
		return Entry{}, err
	}
	if !exists {
		return Entry{}, ErrStudentNotFound
	}

	m, err := s.store.Insert(ctx, model.Message{Teacher: tid, Student: sid, Message: body})
	if err != nil {
		return Entry{}, err
	}
	name, err := s.store.TeacherName(ctx, tid)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:          m.ID,
		Teacher:     m.Teacher,
		TeacherName: name,
		Student:     m.Student,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
	}, nil
}
