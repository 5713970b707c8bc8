package student

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

// Repository persists student records and serves the profile joins.
type Repository struct {
	students   *mongo.Collection
	attendance *mongo.Collection
	routines   *mongo.Collection
	messages   *mongo.Collection
	users      *mongo.Collection
}

// NewRepository creates a repo over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		students:   db.Collection(store.ColStudents),
		attendance: db.Collection(store.ColAttendance),
		routines:   db.Collection(store.ColRoutines),
		messages:   db.Collection(store.ColMessages),
		users:      db.Collection(store.ColUsers),
	}
}

// Insert writes a new student record.
func (r *Repository) Insert(ctx context.Context, st model.Student) (model.Student, error) {
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

// List returns all students sorted by name ascending.
func (r *Repository) List(ctx context.Context) ([]model.Student, error) {
	cur, err := r.students.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	students := []model.Student{}
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Update overwrites the editable fields and returns the updated record.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, name, rollNumber, section, department string) (model.Student, error) {
	update := bson.M{"$set": bson.M{
		"name":       name,
		"rollNumber": rollNumber,
		"section":    section,
		"department": department,
		"updatedAt":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var st model.Student
	err := r.students.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Student{}, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Student{}, ErrRollTaken
		}
		return model.Student{}, err
	}
	return st, nil
}

// Search returns students matching the filter, sorted by name ascending.
func (r *Repository) Search(ctx context.Context, f Filter) ([]model.Student, error) {
	query := bson.M{}
	if f.Department != "" {
		query["department"] = f.Department
	}
	if f.Section != "" {
		query["section"] = f.Section
	}
	if f.Points != nil {
		switch f.Operator {
		case OpGTE:
			query["attendancePoints"] = bson.M{"$gte": *f.Points}
		case OpLTE:
			query["attendancePoints"] = bson.M{"$lte": *f.Points}
		case OpEQ:
			query["attendancePoints"] = bson.M{"$eq": *f.Points}
		}
	}

	cur, err := r.students.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	students := []model.Student{}
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// FindByID returns one student record.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (model.Student, error) {
	var st model.Student
	err := r.students.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Student{}, ErrNotFound
	}
	return st, err
}

// AttendanceHistory returns a student's attendance records newest-first, each
// joined with its routine.
func (r *Repository) AttendanceHistory(ctx context.Context, studentID primitive.ObjectID) ([]AttendanceEntry, error) {
	cur, err := r.attendance.Find(ctx, bson.M{"student": studentID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []model.Attendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}

	routineIDs := make([]primitive.ObjectID, 0, len(records))
	seen := map[primitive.ObjectID]bool{}
	for _, rec := range records {
		if !seen[rec.Routine] {
			seen[rec.Routine] = true
			routineIDs = append(routineIDs, rec.Routine)
		}
	}
	routinesByID := map[primitive.ObjectID]model.Routine{}
	if len(routineIDs) > 0 {
		rcur, err := r.routines.Find(ctx, bson.M{"_id": bson.M{"$in": routineIDs}})
		if err != nil {
			return nil, err
		}
		defer rcur.Close(ctx)
		var routines []model.Routine
		if err := rcur.All(ctx, &routines); err != nil {
			return nil, err
		}
		for _, rt := range routines {
			routinesByID[rt.ID] = rt
		}
	}

	entries := make([]AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entry := AttendanceEntry{
			ID:        rec.ID,
			Date:      rec.Date,
			Status:    rec.Status,
			CreatedAt: rec.CreatedAt,
		}
		if rt, ok := routinesByID[rec.Routine]; ok {
			entry.Routine = &rt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Messages returns a student's messages newest-first with sender names.
func (r *Repository) Messages(ctx context.Context, studentID primitive.ObjectID) ([]MessageEntry, error) {
	cur, err := r.messages.Find(ctx, bson.M{"student": studentID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var msgs []model.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}

	teacherIDs := make([]primitive.ObjectID, 0, len(msgs))
	seen := map[primitive.ObjectID]bool{}
	for _, m := range msgs {
		if !seen[m.Teacher] {
			seen[m.Teacher] = true
			teacherIDs = append(teacherIDs, m.Teacher)
		}
	}
	namesByID := map[primitive.ObjectID]string{}
	if len(teacherIDs) > 0 {
		ucur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": teacherIDs}},
			options.Find().SetProjection(bson.M{"name": 1}))
		if err != nil {
			return nil, err
		}
		defer ucur.Close(ctx)
		var users []model.User
		if err := ucur.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			namesByID[u.ID] = u.Name
		}
	}

	entries := make([]MessageEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, MessageEntry{
			ID:          m.ID,
			Message:     m.Message,
			TeacherName: namesByID[m.Teacher],
			CreatedAt:   m.CreatedAt,
		})
	}
	return entries, nil
}
