package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Krishnaraj-06/AttendIQ/auth"
	"github.com/Krishnaraj-06/AttendIQ/models"
)

var importValidate = validator.New()

// UploadStudents upserts roster rows supplied by the sheet-ingestion side.
// Rows that fail validation or hashing are reported per row; the rest are
// written in one batch.
func (h *Handler) UploadStudents(c *gin.Context) {
	var rows []models.ImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A list of student rows is required"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student list is empty"})
		return
	}

	var students []models.Student
	var rowErrors []string
	for i, row := range rows {
		if err := importValidate.Struct(row); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: missing or invalid fields", i+1))
			continue
		}
		hash, err := auth.HashPassword(row.Password)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		students = append(students, models.Student{
			StudentID:    row.StudentID,
			Name:         row.Name,
			Email:        row.Email,
			PasswordHash: hash,
		})
	}

	if err := h.Directory.UpsertStudents(students); err != nil {
		log.Printf("failed to upsert students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	resp := gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d students", len(students)),
	}
	if len(rowErrors) > 0 {
		resp["errors"] = rowErrors
	}
	c.JSON(http.StatusOK, resp)
}
