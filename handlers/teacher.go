package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Krishnaraj-06/AttendIQ/database"
	"github.com/Krishnaraj-06/AttendIQ/models"
	"github.com/Krishnaraj-06/AttendIQ/qr"
	"github.com/Krishnaraj-06/AttendIQ/sessions"
)

const qrImageSize = 300

// Handler wires the HTTP surface to the session manager and the persistence
// layer.
type Handler struct {
	Manager   *sessions.Manager
	Ledger    *database.Ledger
	Archive   *database.Archive
	Directory *database.Directory
}

// GenerateQR opens an attendance session for a faculty member and returns
// the QR code as a PNG data URI.
func (h *Handler) GenerateQR(c *gin.Context) {
	var req models.GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faculty ID and subject are required"})
		return
	}

	session, payload, err := h.Manager.CreateSession(req.FacultyID, req.Subject, req.Room, time.Now())
	if err != nil {
		log.Printf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	qrCode, err := qr.DataURI(payload, qrImageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating QR code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": session.ID,
		"qrCode":    qrCode,
		"expiresAt": session.ExpiresAt,
		"subject":   session.Subject,
		"room":      session.Room,
	})
}

// Attendance returns the session's accepted scans, ascending by timestamp.
func (h *Handler) Attendance(c *gin.Context) {
	sessionID := c.Param("sessionId")
	entries, err := h.Ledger.ListBySession(sessionID)
	if err != nil {
		log.Printf("failed to list attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"attendance": entries,
	})
}

// FacultySessions returns a faculty member's session history, newest first.
func (h *Handler) FacultySessions(c *gin.Context) {
	facultyID := c.Param("facultyId")
	records, err := h.Archive.ListByFaculty(facultyID)
	if err != nil {
		log.Printf("failed to list sessions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sessions": records,
	})
}
