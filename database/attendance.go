package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Ledger is the append-only, uniqueness-constrained record of accepted scans.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// InsertIfAbsent records a scan unless the (session, student) pair already
// has one. The check and the insert are a single statement against the
// composite unique index, so two near-simultaneous scans for the same pair
// cannot both succeed. Returns false with a nil error on conflict; a conflict
// is an expected outcome, not a fault.
func (l *Ledger) InsertIfAbsent(sessionID, studentID, status string, ts time.Time) (bool, error) {
	record := models.AttendanceRecord{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    status,
		Timestamp: ts,
	}
	result := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListBySession returns the session's records joined with student names,
// ascending by timestamp. Insertion order within a session is exactly
// timestamp order on the dashboard.
func (l *Ledger) ListBySession(sessionID string) ([]models.AttendanceEntry, error) {
	var entries []models.AttendanceEntry
	err := l.db.
		Table("attendance_records").
		Select("attendance_records.student_id, students.name AS student_name, attendance_records.status, attendance_records.timestamp").
		Joins("LEFT JOIN students ON students.student_id = attendance_records.student_id").
		Where("attendance_records.session_id = ?", sessionID).
		Order("attendance_records.timestamp ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountBySession reports how many scans a session has accepted.
func (l *Ledger) CountBySession(sessionID string) (int64, error) {
	var n int64
	err := l.db.Model(&models.AttendanceRecord{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}
