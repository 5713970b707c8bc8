package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campushub/internal/model"
	"campushub/internal/store"
)

// Repository reads the counts behind the dashboard snapshot.
type Repository struct {
	students   *mongo.Collection
	users      *mongo.Collection
	attendance *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		students:   db.Collection(store.ColStudents),
		users:      db.Collection(store.ColUsers),
		attendance: db.Collection(store.ColAttendance),
	}
}

// CountStudents counts all student records.
func (r *Repository) CountStudents(ctx context.Context) (int64, error) {
	return r.students.CountDocuments(ctx, bson.M{})
}

// CountTeachers counts staff accounts with the teacher role.
func (r *Repository) CountTeachers(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{"role": model.RoleTeacher})
}

// CountPresentOn counts attendance records marked present on the given date.
func (r *Repository) CountPresentOn(ctx context.Context, date string) (int64, error) {
	return r.attendance.CountDocuments(ctx, bson.M{"date": date, "status": model.StatusPresent})
}
