package message

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

// Repository persists teacher-to-student messages.
type Repository struct {
	messages *mongo.Collection
	students *mongo.Collection
	users    *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		messages: db.Collection(store.ColMessages),
		students: db.Collection(store.ColStudents),
		users:    db.Collection(store.ColUsers),
	}
}

// Insert appends a message.
func (r *Repository) Insert(ctx context.Context, m model.Message) (model.Message, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := r.messages.InsertOne(ctx, m); err != nil {
		return model.Message{}, err
	}
	return m, nil
}

// StudentExists reports whether the student record exists.
func (r *Repository) StudentExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := r.students.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TeacherName resolves a staff account's display name.
func (r *Repository) TeacherName(ctx context.Context, id primitive.ObjectID) (string, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&u)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
