package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Krishnaraj-06/AttendIQ/database"
	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Auth owns login and token verification for both roles.
type Auth struct {
	dir      *database.Directory
	secret   string
	throttle *throttle
}

func New(dir *database.Directory, secret string) *Auth {
	return &Auth{dir: dir, secret: secret, throttle: newThrottle()}
}

// Stop tears down the throttle's expiry loop.
func (a *Auth) Stop() {
	a.throttle.stop()
}

// HashPassword is the one place bcrypt cost is chosen.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// StudentLogin verifies credentials and issues a student token.
func (a *Auth) StudentLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID and password are required"})
		return
	}
	if a.throttle.blocked(req.ID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, try again later"})
		return
	}

	student, found, err := a.dir.FindStudent(req.ID)
	if err != nil {
		log.Printf("student login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !found || !checkPassword(student.PasswordHash, req.Password) {
		a.throttle.fail(req.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	a.throttle.reset(req.ID)

	token, err := makeToken(a.secret, student.StudentID, RoleStudent, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"student": gin.H{
			"id":    student.StudentID,
			"name":  student.Name,
			"email": student.Email,
		},
	})
}

// FacultyLogin verifies credentials and issues a faculty token.
func (a *Auth) FacultyLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faculty ID and password are required"})
		return
	}
	if a.throttle.blocked(req.ID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, try again later"})
		return
	}

	faculty, found, err := a.dir.FindFaculty(req.ID)
	if err != nil {
		log.Printf("faculty login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !found || !checkPassword(faculty.PasswordHash, req.Password) {
		a.throttle.fail(req.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	a.throttle.reset(req.ID)

	token, err := makeToken(a.secret, faculty.FacultyID, RoleFaculty, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"faculty": gin.H{
			"id":    faculty.FacultyID,
			"name":  faculty.Name,
			"email": faculty.Email,
		},
	})
}
