package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Open connects to the sqlite database and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.Student{},
		&models.Faculty{},
		&models.SessionRecord{},
		&models.AttendanceRecord{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
