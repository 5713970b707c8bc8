package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// fakeStore keeps records and points in memory, mirroring the upsert
// semantics of the mongo repository.
type fakeStore struct {
	routines  map[primitive.ObjectID]bool
	records   map[string]string
	points    map[primitive.ObjectID]int
	failAfter int // fail the nth upsert (1-based), 0 disables
	upserts   int
}

func newFakeStore(routines ...primitive.ObjectID) *fakeStore {
	f := &fakeStore{
		routines: map[primitive.ObjectID]bool{},
		records:  map[string]string{},
		points:   map[primitive.ObjectID]int{},
	}
	for _, r := range routines {
		f.routines[r] = true
	}
	return f
}

func key(studentID, routineID primitive.ObjectID, date string) string {
	return studentID.Hex() + "|" + routineID.Hex() + "|" + date
}

func (f *fakeStore) UpsertStatus(_ context.Context, studentID, routineID primitive.ObjectID, date, status string) (string, error) {
	f.upserts++
	if f.failAfter > 0 && f.upserts >= f.failAfter {
		return "", errors.New("write failed")
	}
	k := key(studentID, routineID, date)
	prev := f.records[k]
	f.records[k] = status
	return prev, nil
}

func (f *fakeStore) AdjustPoints(_ context.Context, studentID primitive.ObjectID, delta int) error {
	f.points[studentID] += delta
	return nil
}

func (f *fakeStore) RoutineExists(_ context.Context, routineID primitive.ObjectID) (bool, error) {
	return f.routines[routineID], nil
}

func TestMarkValidation(t *testing.T) {
	routineID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	statuses := []StudentStatus{{StudentID: studentID.Hex(), Status: model.StatusPresent}}

	tests := []struct {
		name     string
		routine  string
		date     string
		statuses []StudentStatus
		wantErr  error
	}{
		{name: "bad routine id", routine: "nope", date: "2025-01-10", statuses: statuses, wantErr: ErrInvalidID},
		{name: "bad date", routine: routineID.Hex(), date: "10/01/2025", statuses: statuses, wantErr: ErrInvalidDate},
		{name: "empty batch", routine: routineID.Hex(), date: "2025-01-10", statuses: nil, wantErr: ErrEmptyBatch},
		{
			name: "bad status", routine: routineID.Hex(), date: "2025-01-10",
			statuses: []StudentStatus{{StudentID: studentID.Hex(), Status: "late"}},
			wantErr:  ErrInvalidStatus,
		},
		{
			name: "bad student id", routine: routineID.Hex(), date: "2025-01-10",
			statuses: []StudentStatus{{StudentID: "xyz", Status: model.StatusPresent}},
			wantErr:  ErrInvalidID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeStore(routineID))
			err := svc.Mark(context.Background(), tt.routine, tt.date, tt.statuses)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarkUnknownRoutine(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Mark(context.Background(), primitive.NewObjectID().Hex(), "2025-01-10",
		[]StudentStatus{{StudentID: primitive.NewObjectID().Hex(), Status: model.StatusPresent}})
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestMarkBatch(t *testing.T) {
	routineID := primitive.NewObjectID()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	store := newFakeStore(routineID)
	svc := NewService(store)

	err := svc.Mark(context.Background(), routineID.Hex(), "2025-01-10", []StudentStatus{
		{StudentID: a.Hex(), Status: model.StatusPresent},
		{StudentID: b.Hex(), Status: model.StatusAbsent},
	})
	require.NoError(t, err)

	// one record per student, A gains a point, B does not
	assert.Len(t, store.records, 2)
	assert.Equal(t, model.StatusPresent, store.records[key(a, routineID, "2025-01-10")])
	assert.Equal(t, model.StatusAbsent, store.records[key(b, routineID, "2025-01-10")])
	assert.Equal(t, 1, store.points[a])
	assert.Equal(t, 0, store.points[b])
}

func TestMarkIdempotentOnResubmit(t *testing.T) {
	routineID := primitive.NewObjectID()
	a := primitive.NewObjectID()
	store := newFakeStore(routineID)
	svc := NewService(store)

	batch := []StudentStatus{{StudentID: a.Hex(), Status: model.StatusPresent}}
	require.NoError(t, svc.Mark(context.Background(), routineID.Hex(), "2025-01-10", batch))
	require.NoError(t, svc.Mark(context.Background(), routineID.Hex(), "2025-01-10", batch))

	// still exactly one record and one point: re-submitting an identical
	// roll does not inflate the counter
	assert.Len(t, store.records, 1)
	assert.Equal(t, 1, store.points[a])
}

func TestMarkStatusFlipUpdatesInPlace(t *testing.T) {
	routineID := primitive.NewObjectID()
	a := primitive.NewObjectID()
	store := newFakeStore(routineID)
	svc := NewService(store)

	require.NoError(t, svc.Mark(context.Background(), routineID.Hex(), "2025-01-10",
		[]StudentStatus{{StudentID: a.Hex(), Status: model.StatusPresent}}))
	require.NoError(t, svc.Mark(context.Background(), routineID.Hex(), "2025-01-10",
		[]StudentStatus{{StudentID: a.Hex(), Status: model.StatusAbsent}}))

	assert.Len(t, store.records, 1)
	assert.Equal(t, model.StatusAbsent, store.records[key(a, routineID, "2025-01-10")])
	// the present day no longer exists, the counter follows
	assert.Equal(t, 0, store.points[a])
}

func TestMarkDistinctDaysAccumulate(t *testing.T) {
	routineID := primitive.NewObjectID()
	a := primitive.NewObjectID()
	store := newFakeStore(routineID)
	svc := NewService(store)

	for day := 10; day <= 12; day++ {
		date := fmt.Sprintf("2025-01-%d", day)
		require.NoError(t, svc.Mark(context.Background(), routineID.Hex(), date,
			[]StudentStatus{{StudentID: a.Hex(), Status: model.StatusPresent}}))
	}

	assert.Len(t, store.records, 3)
	assert.Equal(t, 3, store.points[a])
}

func TestMarkAbortsOnPersistenceError(t *testing.T) {
	routineID := primitive.NewObjectID()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	store := newFakeStore(routineID)
	store.failAfter = 2
	svc := NewService(store)

	err := svc.Mark(context.Background(), routineID.Hex(), "2025-01-10", []StudentStatus{
		{StudentID: a.Hex(), Status: model.StatusPresent},
		{StudentID: b.Hex(), Status: model.StatusPresent},
	})
	require.Error(t, err)

	// the first write stays committed; the batch is best-effort sequential
	assert.Len(t, store.records, 1)
	assert.Equal(t, 1, store.points[a])
	assert.Equal(t, 0, store.points[b])
}
