package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles carried in signed tokens and on user documents.
const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// User is a staff account (teacher or admin).
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StudentUser is a student login credential linked 1:1 to a Student record.
type StudentUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Student   primitive.ObjectID `bson:"student" json:"student"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Student is the academic record. AttendancePoints counts distinct present
// days and is mutated only by the attendance marking flow.
type Student struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	RollNumber       string             `bson:"rollNumber" json:"rollNumber"`
	Section          string             `bson:"section" json:"section"`
	Department       string             `bson:"department" json:"department"`
	AttendancePoints int                `bson:"attendancePoints" json:"attendancePoints"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Routine is one recurring weekly class session. TeacherID is optional; the
// free-text Teacher name is kept for display.
type Routine struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Day        string              `bson:"day" json:"day"`
	Time       string              `bson:"time" json:"time"`
	Subject    string              `bson:"subject" json:"subject"`
	Teacher    string              `bson:"teacher" json:"teacher"`
	TeacherID  *primitive.ObjectID `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	Department string              `bson:"department" json:"department"`
	Section    string              `bson:"section" json:"section"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Attendance is the per-student per-routine per-day status. The collection
// carries a unique index on (student, routine, date); Date is a YYYY-MM-DD
// calendar string.
type Attendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student   primitive.ObjectID `bson:"student" json:"student"`
	Routine   primitive.ObjectID `bson:"routine" json:"routine"`
	Date      string             `bson:"date" json:"date"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Message is an append-only teacher-to-student note.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Teacher   primitive.ObjectID `bson:"teacher" json:"teacher"`
	Student   primitive.ObjectID `bson:"student" json:"student"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Notice is a bulletin post; deletable only by its author.
type Notice struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidDay reports whether day is one of the seven weekday names used by
// routine documents.
func ValidDay(day string) bool {
	switch day {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		return true
	}
	return false
}

// ValidStatus reports whether status is a recognized attendance status.
func ValidStatus(status string) bool {
	return status == StatusPresent || status == StatusAbsent
}
