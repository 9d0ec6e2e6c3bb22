package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Krishnaraj-06/AttendIQ/models"
	"github.com/Krishnaraj-06/AttendIQ/sessions"
)

// ScanQR records a student's scan against a session. The scan time is
// stamped here, server-side; client clocks are never trusted.
func (h *Handler) ScanQR(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID and student ID are required"})
		return
	}

	result, err := h.Manager.RecordScan(req.SessionID, req.StudentID, time.Now())
	if err != nil {
		h.scanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"sessionId":   req.SessionID,
		"studentId":   result.StudentID,
		"studentName": result.StudentName,
		"subject":     result.Subject,
		"status":      result.Status,
		"timestamp":   result.Timestamp,
		"message":     "Attendance marked successfully as " + result.Status,
	})
}

func (h *Handler) scanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "QR code has expired or is invalid", "expired": true})
	case errors.Is(err, sessions.ErrSessionExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "QR code has expired", "expired": true})
	case errors.Is(err, sessions.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
	case errors.Is(err, sessions.ErrDuplicateScan):
		c.JSON(http.StatusConflict, gin.H{"error": "Attendance already marked for this session", "alreadyMarked": true})
	default:
		log.Printf("scan failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
	}
}

// Checkin is the landing endpoint encoded in the QR. It tells the scanner
// app whether the session is still open before it posts the scan.
func (h *Handler) Checkin(c *gin.Context) {
	sessionID := c.Param("sessionId")
	record, found, err := h.Archive.GetSession(sessionID)
	if err != nil {
		log.Printf("failed to load session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": record.SessionID,
		"subject":   record.Subject,
		"room":      record.Room,
		"expiresAt": record.ExpiresAt,
		"active":    !time.Now().After(record.ExpiresAt),
	})
}
