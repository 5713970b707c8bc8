package routine

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

// Repository persists weekly class routines.
type Repository struct {
	routines *mongo.Collection
	users    *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		routines: db.Collection(store.ColRoutines),
		users:    db.Collection(store.ColUsers),
	}
}

// Insert writes a new routine item.
func (r *Repository) Insert(ctx context.Context, rt model.Routine) (model.Routine, error) {
	now := time.Now().UTC()
	rt.ID = primitive.NewObjectID()
	rt.CreatedAt = now
	rt.UpdatedAt = now
	if _, err := r.routines.InsertOne(ctx, rt); err != nil {
		return model.Routine{}, err
	}
	return rt, nil
}

// List returns all routine items sorted by day, then time slot.
func (r *Repository) List(ctx context.Context) ([]model.Routine, error) {
	cur, err := r.routines.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	routines := []model.Routine{}
	if err := cur.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// TeacherName resolves a staff account's display name.
func (r *Repository) TeacherName(ctx context.Context, id primitive.ObjectID) (string, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrTeacherNotFound
	}
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
