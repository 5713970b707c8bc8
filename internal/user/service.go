package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidID          = errors.New("invalid account id")
	ErrEmailTaken         = errors.New("this email is already in use")
	ErrRollTaken          = errors.New("a student with this roll number is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertUser(ctx context.Context, u model.User) (model.User, error)
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
	InsertStudentUser(ctx context.Context, su model.StudentUser) (model.StudentUser, error)
	FindStudentUserByEmail(ctx context.Context, email string) (model.StudentUser, error)
	StudentUserEmailExists(ctx context.Context, email string) (bool, error)
	StudentRollExists(ctx context.Context, rollNumber string) (bool, error)
	InsertStudent(ctx context.Context, st model.Student) (model.Student, error)
}

// Service implements account registration and login for teachers and
// students. Token issuance stays in the API layer; the service only proves
// identity.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RegisterTeacher creates a teacher account with a hashed password.
func (s *Service) RegisterTeacher(ctx context.Context, name, email, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.InsertUser(ctx, model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleTeacher,
	})
}

// Login verifies teacher credentials and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, id string) (model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, ErrInvalidID
	}
	return s.store.FindUserByID(ctx, oid)
}

// StudentAccount pairs a student login with its academic record.
type StudentAccount struct {
	StudentUser model.StudentUser
	Student     model.Student
}

// RegisterStudent creates the academic record first, then the linked login
// credential. The two inserts are not atomic; a failure between them leaves
// an unlinked student record, matching the documented best-effort writes.
func (s *Service) RegisterStudent(ctx context.Context, name, rollNumber, department, section, email, password string) (StudentAccount, error) {
	taken, err := s.store.StudentRollExists(ctx, rollNumber)
	if err != nil {
		return StudentAccount{}, err
	}
	if taken {
		return StudentAccount{}, ErrRollTaken
	}
	exists, err := s.store.StudentUserEmailExists(ctx, email)
	if err != nil {
		return StudentAccount{}, err
	}
	if exists {
		return StudentAccount{}, ErrEmailTaken
	}

	st, err := s.store.InsertStudent(ctx, model.Student{
		Name:       name,
		RollNumber: rollNumber,
		Section:    section,
		Department: department,
	})
	if err != nil {
		return StudentAccount{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return StudentAccount{}, fmt.Errorf("hash password: %w", err)
	}
	su, err := s.store.InsertStudentUser(ctx, model.StudentUser{
		Email:    email,
		Password: string(hash),
		Student:  st.ID,
	})
	if err != nil {
		return StudentAccount{}, err
	}
	return StudentAccount{StudentUser: su, Student: st}, nil
}

// LoginStudent verifies student credentials and returns the login account.
func (s *Service) LoginStudent(ctx context.Context, email, password string) (model.StudentUser, error) {
	su, err := s.store.FindStudentUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return model.StudentUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.StudentUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(su.Password), []byte(password)) != nil {
		return model.StudentUser{}, ErrInvalidCredentials
	}
	return su, nil
}
