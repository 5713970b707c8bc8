package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/attendance"
	"campushub/internal/auth"
	"campushub/internal/config"
	"campushub/internal/model"
	"campushub/internal/notice"
)

type attendanceStore struct {
	routines map[primitive.ObjectID]bool
	records  map[string]string
	points   map[primitive.ObjectID]int
}

func (f *attendanceStore) UpsertStatus(_ context.Context, studentID, routineID primitive.ObjectID, date, status string) (string, error) {
	k := studentID.Hex() + "|" + routineID.Hex() + "|" + date
	prev := f.records[k]
	f.records[k] = status
	return prev, nil
}

func (f *attendanceStore) AdjustPoints(_ context.Context, studentID primitive.ObjectID, delta int) error {
	f.points[studentID] += delta
	return nil
}

func (f *attendanceStore) RoutineExists(_ context.Context, routineID primitive.ObjectID) (bool, error) {
	return f.routines[routineID], nil
}

type noticeStore struct {
	notices map[primitive.ObjectID]model.Notice
}

func (f *noticeStore) Insert(_ context.Context, n model.Notice) (model.Notice, error) {
	n.ID = primitive.NewObjectID()
	f.notices[n.ID] = n
	return n, nil
}

func (f *noticeStore) List(context.Context) ([]model.Notice, error) {
	out := []model.Notice{}
	for _, n := range f.notices {
		out = append(out, n)
	}
	return out, nil
}

func (f *noticeStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Notice, error) {
	n, ok := f.notices[id]
	if !ok {
		return model.Notice{}, notice.ErrNotFound
	}
	return n, nil
}

func (f *noticeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.notices, id)
	return nil
}

func (f *noticeStore) AuthorNames(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	return map[primitive.ObjectID]string{}, nil
}

func testRouter(t *testing.T) (*gin.Engine, config.App, *attendanceStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.App{
		JWTIssuer:     "campushub-test",
		JWTSigningKey: "test-secret",
		TokenTTL:      time.Hour,
	}
	attStore := &attendanceStore{
		routines: map[primitive.ObjectID]bool{},
		records:  map[string]string{},
		points:   map[primitive.ObjectID]int{},
	}
	h := New(cfg,
		nil, nil, nil,
		attendance.NewService(attStore),
		nil, nil,
		notice.NewService(&noticeStore{notices: map[primitive.ObjectID]model.Notice{}}),
	)

	r := gin.New()
	h.Register(r)
	return r, cfg, attStore
}

func bearer(t *testing.T, cfg config.App, role string) string {
	t.Helper()
	tok, err := auth.Issue(primitive.NewObjectID().Hex(), role, "", cfg.JWTIssuer, cfg.JWTSigningKey, cfg.TokenTTL)
	require.NoError(t, err)
	return "Bearer " + tok.Value
}

func TestMarkAttendanceRequiresToken(t *testing.T) {
	r, _, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader("{}"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarkAttendanceHappyPath(t *testing.T) {
	r, cfg, attStore := testRouter(t)
	routineID := primitive.NewObjectID()
	attStore.routines[routineID] = true
	studentID := primitive.NewObjectID()

	body := `{
		"routineId": "` + routineID.Hex() + `",
		"date": "2025-01-10",
		"studentStatuses": [{"studentId": "` + studentID.Hex() + `", "status": "present"}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cfg, model.RoleTeacher))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, attStore.points[studentID])

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["msg"], "attendance marked")
}

func TestMarkAttendanceUnknownRoutine(t *testing.T) {
	r, cfg, _ := testRouter(t)

	body := `{
		"routineId": "` + primitive.NewObjectID().Hex() + `",
		"date": "2025-01-10",
		"studentStatuses": [{"studentId": "` + primitive.NewObjectID().Hex() + `", "status": "present"}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cfg, model.RoleTeacher))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoticeCreateRequiresTeacherRole(t *testing.T) {
	r, cfg, _ := testRouter(t)
	body := `{"title": "Exams", "content": "Schedule posted"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cfg, model.RoleStudent))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/notices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cfg, model.RoleTeacher))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
