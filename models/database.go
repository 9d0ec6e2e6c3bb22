package models

import "time"

// Student and Faculty are the directory entities. The core only reads them to
// validate identity; rows are written by login bootstrap and roster import.

type Student struct {
	ID           uint      `json:"-" gorm:"primarykey"`
	StudentID    string    `json:"studentId" gorm:"uniqueIndex"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Faculty struct {
	ID           uint      `json:"-" gorm:"primarykey"`
	FacultyID    string    `json:"facultyId" gorm:"uniqueIndex"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionRecord is the durable audit copy of a session. The live copy lives
// in the in-memory store; this row outlives it so attendance history keeps
// its context after the window closes.
type SessionRecord struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	SessionID string    `json:"sessionId" gorm:"uniqueIndex"`
	FacultyID string    `json:"facultyId" gorm:"index"`
	Subject   string    `json:"subject"`
	Room      string    `json:"room"`
	QRPayload string    `json:"qrPayload"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttendanceRecord is one accepted scan. The composite unique index is what
// makes duplicate detection atomic: the first insert for a pair wins and
// later ones conflict instead of overwriting.
type AttendanceRecord struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	SessionID string    `json:"sessionId" gorm:"index:idx_attendance_session_student,unique"`
	StudentID string    `json:"studentId" gorm:"index:idx_attendance_session_student,unique"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
