package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrInvalidID       = errors.New("invalid identifier")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidStatus   = errors.New("status must be present or absent")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrEmptyBatch      = errors.New("no student statuses supplied")
)

// StudentStatus is one entry of a marking batch.
type StudentStatus struct {
	StudentID string `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// Store is the persistence surface the service needs.
type Store interface {
	UpsertStatus(ctx context.Context, studentID, routineID primitive.ObjectID, date, status string) (string, error)
	AdjustPoints(ctx context.Context, studentID primitive.ObjectID, delta int) error
	RoutineExists(ctx context.Context, routineID primitive.ObjectID) (bool, error)
}

// Service coordinates attendance marking for one class session and day.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Mark upserts one record per (student, routine, date) triple and keeps each
// student's attendancePoints equal to their count of distinct present days:
// the counter moves only when the stored status actually transitions, so
// re-submitting an identical roll is a no-op on points.
//
// The batch is sequential and not atomic as a whole; any persistence error
// aborts it and records written before the error stay committed.
func (s *Service) Mark(ctx context.Context, routineID, date string, statuses []StudentStatus) error {
	rid, err := primitive.ObjectIDFromHex(routineID)
	if err != nil {
		return ErrInvalidID
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	if len(statuses) == 0 {
		return ErrEmptyBatch
	}

	exists, err := s.store.RoutineExists(ctx, rid)
	if err != nil {
		return fmt.Errorf("check routine: %w", err)
	}
	if !exists {
		return ErrRoutineNotFound
	}

	type entry struct {
		id     primitive.ObjectID
		status string
	}
	batch := make([]entry, 0, len(statuses))
	for _, ss := range statuses {
		sid, err := primitive.ObjectIDFromHex(ss.StudentID)
		if err != nil {
			return ErrInvalidID
		}
		if !model.ValidStatus(ss.Status) {
			return ErrInvalidStatus
		}
		batch = append(batch, entry{id: sid, status: ss.Status})
	}

	for _, e := range batch {
		prev, err := s.store.UpsertStatus(ctx, e.id, rid, date, e.status)
		if err != nil {
			return fmt.Errorf("upsert attendance: %w", err)
		}

		delta := 0
		if e.status == model.StatusPresent && prev != model.StatusPresent {
			delta = 1
		} else if e.status == model.StatusAbsent && prev == model.StatusPresent {
			delta = -1
		}
		if delta != 0 {
			if err := s.store.AdjustPoints(ctx, e.id, delta); err != nil {
				return fmt.Errorf("adjust points: %w", err)
			}
		}
	}
	return nil
}
