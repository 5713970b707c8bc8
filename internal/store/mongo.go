package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the domain packages.
const (
	ColUsers        = "users"
	ColStudentUsers = "student_users"
	ColStudents     = "students"
	ColRoutines     = "routines"
	ColAttendance   = "attendance"
	ColMessages     = "messages"
	ColNotices      = "notices"
)

// Mongo wraps a mongo client bound to one database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects with short timeouts and verifies the connection.
func NewMongo(uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// EnsureIndexes creates the uniqueness constraints the domain relies on:
// one attendance record per (student, routine, date), unique account emails,
// unique student roll numbers.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.DB.Collection(ColAttendance).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student", Value: 1}, {Key: "routine", Value: 1}, {Key: "date", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = m.DB.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = m.DB.Collection(ColStudentUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = m.DB.Collection(ColStudents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rollNumber", Value: 1}},
		Options: unique,
	})
	return err
}

// Healthy verifies connectivity.
func (m *Mongo) Healthy(ctx context.Context) bool {
	if m == nil || m.Client == nil {
		return false
	}
	return m.Client.Ping(ctx, nil) == nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
