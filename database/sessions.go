package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Archive persists session metadata for audit and history. Rows here are
// never swept; only the in-memory store forgets expired sessions.
type Archive struct {
	db *gorm.DB
}

func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) SaveSession(record models.SessionRecord) error {
	return a.db.Create(&record).Error
}

// GetSession returns the audit row for a session id. The second return is
// false when the id was never created.
func (a *Archive) GetSession(sessionID string) (models.SessionRecord, bool, error) {
	var record models.SessionRecord
	err := a.db.Where("session_id = ?", sessionID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SessionRecord{}, false, nil
	}
	if err != nil {
		return models.SessionRecord{}, false, err
	}
	return record, true, nil
}

// ListByFaculty returns a faculty's past sessions, newest first.
func (a *Archive) ListByFaculty(facultyID string) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	err := a.db.Where("faculty_id = ?", facultyID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
