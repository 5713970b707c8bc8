package attendance

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campushub/internal/model"
	"campushub/internal/store"
)

// Repository persists attendance records and the per-student points counter.
type Repository struct {
	attendance *mongo.Collection
	students   *mongo.Collection
	routines   *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		attendance: db.Collection(store.ColAttendance),
		students:   db.Collection(store.ColStudents),
		routines:   db.Collection(store.ColRoutines),
	}
}

// UpsertStatus writes the status for one (student, routine, date) triple and
// returns the previously stored status, or "" when the record was just
// created. The unique index on the triple makes the upsert absorb retries.
func (r *Repository) UpsertStatus(ctx context.Context, studentID, routineID primitive.ObjectID, date, status string) (string, error) {
	now := time.Now().UTC()
	filter := bson.M{"student": studentID, "routine": routineID, "date": date}
	update := bson.M{
		"$set": bson.M{"status": status, "updatedAt": now},
		"$setOnInsert": bson.M{
			"student":   studentID,
			"routine":   routineID,
			"date":      date,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	var prev model.Attendance
	err := r.attendance.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return prev.Status, nil
}

// AdjustPoints shifts a student's attendancePoints counter by delta.
func (r *Repository) AdjustPoints(ctx context.Context, studentID primitive.ObjectID, delta int) error {
	_, err := r.students.UpdateByID(ctx, studentID, bson.M{
		"$inc": bson.M{"attendancePoints": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// RoutineExists reports whether a routine document exists.
func (r *Repository) RoutineExists(ctx context.Context, routineID primitive.ObjectID) (bool, error) {
	err := r.routines.FindOne(ctx, bson.M{"_id": routineID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
