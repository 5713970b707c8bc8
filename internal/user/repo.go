package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campushub/internal/model"
	"campushub/internal/store"
)

// Repository persists staff and student accounts.
type Repository struct {
	users        *mongo.Collection
	studentUsers *mongo.Collection
	students     *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:        db.Collection(store.ColUsers),
		studentUsers: db.Collection(store.ColStudentUsers),
		students:     db.Collection(store.ColStudents),
	}
}

// InsertUser writes a staff account.
func (r *Repository) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}
	return u, nil
}

// FindUserByEmail returns a staff account by email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// FindUserByID returns a staff account by id.
func (r *Repository) FindUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// InsertStudentUser writes a student login credential.
func (r *Repository) InsertStudentUser(ctx context.Context, su model.StudentUser) (model.StudentUser, error) {
	now := time.Now().UTC()
	su.ID = primitive.NewObjectID()
	su.CreatedAt = now
	su.UpdatedAt = now
	if _, err := r.studentUsers.InsertOne(ctx, su); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.StudentUser{}, ErrEmailTaken
		}
		return model.StudentUser{}, err
	}
	return su, nil
}

// FindStudentUserByEmail returns a student login by email.
func (r *Repository) FindStudentUserByEmail(ctx context.Context, email string) (model.StudentUser, error) {
	var su model.StudentUser
	err := r.studentUsers.FindOne(ctx, bson.M{"email": email}).Decode(&su)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.StudentUser{}, ErrNotFound
	}
	return su, err
}

// StudentUserEmailExists reports whether a student login already uses email.
func (r *Repository) StudentUserEmailExists(ctx context.Context, email string) (bool, error) {
	err := r.studentUsers.FindOne(ctx, bson.M{"email": email}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// StudentRollExists reports whether a student record already uses rollNumber.
func (r *Repository) StudentRollExists(ctx context.Context, rollNumber string) (bool, error) {
	err := r.students.FindOne(ctx, bson.M{"rollNumber": rollNumber}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertStudent writes the academic record created during self-registration.
func (r *Repository) InsertStudent(ctx context.Context, st model.Student) (model.Student, error) {
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID()
	st.CreatedAt = now
	st.UpdatedAt = now
	if _, err := r.students.InsertOne(ctx, st); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Student{}, ErrRollTaken
		}
		return model.Student{}, err
	}
	return st, nil
}
