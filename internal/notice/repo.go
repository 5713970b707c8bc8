package notice

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

// Repository persists bulletin notices.
type Repository struct {
	notices *mongo.Collection
	users   *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		notices: db.Collection(store.ColNotices),
		users:   db.Collection(store.ColUsers),
	}
}

// Insert writes a new notice.
func (r *Repository) Insert(ctx context.Context, n model.Notice) (model.Notice, error) {
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = now
	n.UpdatedAt = now
	if _, err := r.notices.InsertOne(ctx, n); err != nil {
		return model.Notice{}, err
	}
	return n, nil
}

// List returns all notices newest-first.
func (r *Repository) List(ctx context.Context) ([]model.Notice, error) {
	cur, err := r.notices.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	notices := []model.Notice{}
	if err := cur.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// FindByID returns one notice.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (model.Notice, error) {
	var n model.Notice
	err := r.notices.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Notice{}, ErrNotFound
	}
	return n, err
}

// Delete removes one notice.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.notices.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AuthorNames resolves display names for the given author ids.
func (r *Repository) AuthorNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := map[primitive.ObjectID]string{}
	if len(ids) == 0 {
		return names, nil
	}
	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
