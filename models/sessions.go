package models

import "time"

// Attendance status values. A scan within the late threshold of session
// creation is present, anything after is late.
const (
	StatusPresent = "present"
	StatusLate    = "late"
)

// Session is one faculty-initiated, time-boxed attendance window. The ID is
// the capability token: knowing it is what lets a student check in.
type Session struct {
	ID        string    `json:"sessionId"`
	FacultyID string    `json:"facultyId"`
	Subject   string    `json:"subject"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session window has elapsed. The boundary
// instant itself is still valid: a scan at exactly ExpiresAt is accepted.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
