package models

import "time"

type GenerateQRRequest struct {
	FacultyID string `json:"facultyId" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Room      string `json:"room"`
}

type ScanRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ImportRow is one roster tuple handed over by the sheet-ingestion side.
// Passwords arrive in plaintext and are hashed before they touch the database.
type ImportRow struct {
	StudentID string `json:"studentId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=4"`
}

// AttendanceEntry is one dashboard row: a ledger record joined with the
// student's display name.
type AttendanceEntry struct {
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}
