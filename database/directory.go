package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Directory looks up students and faculty by id or email. The attendance core
// only uses it to confirm a scanner exists; credentials are checked by the
// auth layer.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// FindStudent resolves an identifier (student id or email) to a student.
// The second return is false when no such student exists.
func (d *Directory) FindStudent(identifier string) (models.Student, bool, error) {
	var student models.Student
	err := d.db.Where("student_id = ? OR email = ?", identifier, identifier).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, false, nil
	}
	if err != nil {
		return models.Student{}, false, err
	}
	return student, true, nil
}

func (d *Directory) FindFaculty(identifier string) (models.Faculty, bool, error) {
	var faculty models.Faculty
	err := d.db.Where("faculty_id = ? OR email = ?", identifier, identifier).First(&faculty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Faculty{}, false, nil
	}
	if err != nil {
		return models.Faculty{}, false, err
	}
	return faculty, true, nil
}

// UpsertStudents writes imported roster rows, updating name, email and
// password hash for student ids that already exist.
func (d *Directory) UpsertStudents(students []models.Student) error {
	if len(students) == 0 {
		return nil
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash"}),
	}).Create(&students).Error
}

// UpsertFaculty mirrors UpsertStudents for faculty accounts.
func (d *Directory) UpsertFaculty(faculty []models.Faculty) error {
	if len(faculty) == 0 {
		return nil
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "faculty_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash"}),
	}).Create(&faculty).Error
}
