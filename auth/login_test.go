package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishnaraj-06/AttendIQ/database"
	"github.com/Krishnaraj-06/AttendIQ/models"
)

func newTestAuth(t *testing.T) (*gin.Engine, *Auth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	dir := database.NewDirectory(db)

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NoError(t, dir.UpsertStudents([]models.Student{
		{StudentID: "alice", Name: "Alice A", Email: "alice@test.edu", PasswordHash: hash},
	}))
	require.NoError(t, dir.UpsertFaculty([]models.Faculty{
		{FacultyID: "fac1", Name: "Prof. Rao", Email: "rao@test.edu", PasswordHash: hash},
	}))

	a := New(dir, "test-secret")
	t.Cleanup(a.Stop)

	router := gin.New()
	router.POST("/api/student/login", a.StudentLogin)
	router.POST("/api/faculty/login", a.FacultyLogin)
	router.GET("/protected", a.RequireRole(RoleFaculty), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})
	return router, a
}

func post(t *testing.T, router *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestStudentLogin(t *testing.T) {
	router, _ := newTestAuth(t)

	w, resp := post(t, router, "/api/student/login", gin.H{"id": "alice", "password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["token"])

	w, _ = post(t, router, "/api/student/login", gin.H{"id": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = post(t, router, "/api/student/login", gin.H{"id": "nobody", "password": "hunter2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = post(t, router, "/api/student/login", gin.H{"id": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFacultyLoginAndMiddleware(t *testing.T) {
	router, _ := newTestAuth(t)

	w, resp := post(t, router, "/api/faculty/login", gin.H{"id": "rao@test.edu", "password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	token := resp["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fac1")

	// No token, garbage token, and a student token are all rejected.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, studentResp := post(t, router, "/api/student/login", gin.H{"id": "alice", "password": "hunter2"})
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+studentResp["token"].(string))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginThrottleLocksOut(t *testing.T) {
	router, _ := newTestAuth(t)

	for i := 0; i < maxFailures; i++ {
		w, _ := post(t, router, "/api/student/login", gin.H{"id": "alice", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Even the right password is refused while locked out.
	w, _ := post(t, router, "/api/student/login", gin.H{"id": "alice", "password": "hunter2"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
