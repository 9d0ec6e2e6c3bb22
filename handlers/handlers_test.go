package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishnaraj-06/AttendIQ/broadcast"
	"github.com/Krishnaraj-06/AttendIQ/database"
	"github.com/Krishnaraj-06/AttendIQ/models"
	"github.com/Krishnaraj-06/AttendIQ/sessions"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	directory := database.NewDirectory(db)
	require.NoError(t, directory.UpsertStudents([]models.Student{
		{StudentID: "alice", Name: "Alice A", Email: "alice@test.edu", PasswordHash: "x"},
		{StudentID: "bob", Name: "Bob B", Email: "bob@test.edu", PasswordHash: "x"},
	}))

	ledger := database.NewLedger(db)
	archive := database.NewArchive(db)
	hub := broadcast.NewHub()
	t.Cleanup(hub.Close)

	manager := sessions.NewManager(sessions.NewStore(), ledger, directory, archive, hub, sessions.Config{
		Window:        2 * time.Minute,
		LateThreshold: 60 * time.Second,
		BaseURL:       "http://localhost:5000",
	})

	h := &Handler{Manager: manager, Ledger: ledger, Archive: archive, Directory: directory}

	router := gin.New()
	router.POST("/api/faculty/generate-qr", h.GenerateQR)
	router.GET("/api/faculty/attendance/:sessionId", h.Attendance)
	router.GET("/api/faculty/sessions/:facultyId", h.FacultySessions)
	router.POST("/api/faculty/upload-students", h.UploadStudents)
	router.POST("/api/student/scan-qr", h.ScanQR)
	router.GET("/checkin/:sessionId", h.Checkin)
	return router, h
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestGenerateQRAndScanFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/faculty/generate-qr", gin.H{
		"facultyId": "fac1",
		"subject":   "Physics",
		"room":      "A-101",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sessionID, _ := resp["sessionId"].(string)
	require.NotEmpty(t, sessionID)
	assert.Contains(t, resp["qrCode"], "data:image/png;base64,")

	// The checkin endpoint the QR points at reports the session open.
	w, resp = doJSON(t, router, http.MethodGet, "/checkin/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["active"])
	assert.Equal(t, "Physics", resp["subject"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/student/scan-qr", gin.H{
		"sessionId": sessionID,
		"studentId": "alice",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPresent, resp["status"])
	assert.Equal(t, "Alice A", resp["studentName"])

	// A second scan by the same student conflicts.
	w, resp = doJSON(t, router, http.MethodPost, "/api/student/scan-qr", gin.H{
		"sessionId": sessionID,
		"studentId": "alice",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, true, resp["alreadyMarked"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/faculty/attendance/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	attendance, ok := resp["attendance"].([]any)
	require.True(t, ok)
	require.Len(t, attendance, 1)

	w, resp = doJSON(t, router, http.MethodGet, "/api/faculty/sessions/fac1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessionList, ok := resp["sessions"].([]any)
	require.True(t, ok)
	assert.Len(t, sessionList, 1)
}

func TestScanErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/student/scan-qr", gin.H{
		"sessionId": "nonexistent",
		"studentId": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, true, resp["expired"])

	_, created := doJSON(t, router, http.MethodPost, "/api/faculty/generate-qr", gin.H{
		"facultyId": "fac1",
		"subject":   "Physics",
	})
	sessionID := created["sessionId"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/student/scan-qr", gin.H{
		"sessionId": sessionID,
		"studentId": "mallory",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/student/scan-qr", gin.H{
		"studentId": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateQRValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/faculty/generate-qr", gin.H{
		"facultyId": "fac1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadStudents(t *testing.T) {
	router, h := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/faculty/upload-students", []gin.H{
		{"studentId": "dave", "name": "Dave D", "email": "dave@test.edu", "password": "hunter2"},
		{"studentId": "", "name": "Nameless", "email": "bad", "password": ""},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Processed 1 students", resp["message"])
	errs, ok := resp["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 1)

	student, found, err := h.Directory.FindStudent("dave")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Dave D", student.Name)
	assert.NotEqual(t, "hunter2", student.PasswordHash)

	w, _ = doJSON(t, router, http.MethodPost, "/api/faculty/upload-students", []gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
