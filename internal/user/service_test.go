package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

type fakeStore struct {
	users        map[string]model.User        // by email
	studentUsers map[string]model.StudentUser // by email
	students     map[string]model.Student     // by roll number
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]model.User{},
		studentUsers: map[string]model.StudentUser{},
		students:     map[string]model.Student{},
	}
}

func (f *fakeStore) InsertUser(_ context.Context, u model.User) (model.User, error) {
	if _, ok := f.users[u.Email]; ok {
		return model.User{}, ErrEmailTaken
	}
	u.ID = primitive.NewObjectID()
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) FindUserByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (f *fakeStore) InsertStudentUser(_ context.Context, su model.StudentUser) (model.StudentUser, error) {
	if _, ok := f.studentUsers[su.Email]; ok {
		return model.StudentUser{}, ErrEmailTaken
	}
	su.ID = primitive.NewObjectID()
	f.studentUsers[su.Email] = su
	return su, nil
}

func (f *fakeStore) FindStudentUserByEmail(_ context.Context, email string) (model.StudentUser, error) {
	su, ok := f.studentUsers[email]
	if !ok {
		return model.StudentUser{}, ErrNotFound
	}
	return su, nil
}

func (f *fakeStore) StudentUserEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.studentUsers[email]
	return ok, nil
}

func (f *fakeStore) StudentRollExists(_ context.Context, rollNumber string) (bool, error) {
	_, ok := f.students[rollNumber]
	return ok, nil
}

func (f *fakeStore) InsertStudent(_ context.Context, st model.Student) (model.Student, error) {
	if _, ok := f.students[st.RollNumber]; ok {
		return model.Student{}, ErrRollTaken
	}
	st.ID = primitive.NewObjectID()
	f.students[st.RollNumber] = st
	return st, nil
}

func TestRegisterTeacherHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	u, err := svc.RegisterTeacher(context.Background(), "T", "t@school.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, u.Role)
	assert.NotEqual(t, "hunter22", store.users["t@school.edu"].Password)
}

func TestRegisterTeacherDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.RegisterTeacher(context.Background(), "T", "t@school.edu", "hunter22")
	require.NoError(t, err)
	_, err = svc.RegisterTeacher(context.Background(), "T2", "t@school.edu", "hunter23")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeStore())
	reg, err := svc.RegisterTeacher(context.Background(), "T", "t@school.edu", "hunter22")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "t@school.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	_, err = svc.Login(context.Background(), "t@school.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "unknown@school.edu", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStudentLinksRecords(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	acct, err := svc.RegisterStudent(context.Background(), "Alice", "42", "Science", "A", "a@school.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, acct.Student.ID, acct.StudentUser.Student)
	assert.Equal(t, 0, acct.Student.AttendancePoints)
}

func TestRegisterStudentDuplicates(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.RegisterStudent(context.Background(), "Alice", "42", "Science", "A", "a@school.edu", "hunter22")
	require.NoError(t, err)

	_, err = svc.RegisterStudent(context.Background(), "Bob", "42", "Science", "A", "b@school.edu", "hunter22")
	assert.ErrorIs(t, err, ErrRollTaken)

	_, err = svc.RegisterStudent(context.Background(), "Bob", "43", "Science", "A", "a@school.edu", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginStudent(t *testing.T) {
	svc := NewService(newFakeStore())
	acct, err := svc.RegisterStudent(context.Background(), "Alice", "42", "Science", "A", "a@school.edu", "hunter22")
	require.NoError(t, err)

	su, err := svc.LoginStudent(context.Background(), "a@school.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, acct.StudentUser.ID, su.ID)

	_, err = svc.LoginStudent(context.Background(), "a@school.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
