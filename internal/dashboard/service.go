package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Stats is the point-in-time dashboard snapshot. AttendanceToday is the
// college-wide percentage of students marked present today, 0 when there are
// no students.
type Stats struct {
	TotalStudents   int64 `json:"totalStudents"`
	TotalTeachers   int64 `json:"totalTeachers"`
	AttendanceToday int   `json:"attendanceToday"`
}

// Store is the persistence surface the service needs.
type Store interface {
	CountStudents(ctx context.Context) (int64, error)
	CountTeachers(ctx context.Context) (int64, error)
	CountPresentOn(ctx context.Context, date string) (int64, error)
}

// Service computes dashboard aggregates. Read-only; every call rescans,
// which is fine at the data volumes this system serves.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Compute returns today's snapshot.
func (s *Service) Compute(ctx context.Context) (Stats, error) {
	students, err := s.store.CountStudents(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count students: %w", err)
	}
	teachers, err := s.store.CountTeachers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count teachers: %w", err)
	}

	today := s.now().UTC().Format("2006-01-02")
	present, err := s.store.CountPresentOn(ctx, today)
	if err != nil {
		return Stats{}, fmt.Errorf("count present: %w", err)
	}

	pct := 0
	if students > 0 {
		pct = int(math.Round(float64(present) / float64(students) * 100))
	}
	return Stats{
		TotalStudents:   students,
		TotalTeachers:   teachers,
		AttendanceToday: pct,
	}, nil
}
