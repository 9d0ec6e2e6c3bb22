package sessions

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Collaborators the manager depends on. The database package satisfies
// Ledger, Directory and Archive; the broadcast hub satisfies Notifier.

// Ledger persists accepted scans with an atomic uniqueness check.
type Ledger interface {
	InsertIfAbsent(sessionID, studentID, status string, ts time.Time) (bool, error)
}

// Directory confirms that a scanning student exists.
type Directory interface {
	FindStudent(identifier string) (models.Student, bool, error)
}

// Archive keeps the durable audit copy of each session.
type Archive interface {
	SaveSession(record models.SessionRecord) error
}

// Notifier receives domain events after the fact. It is purely
// observational: nothing in the scan path depends on delivery.
type Notifier interface {
	SessionCreated(session models.Session)
	AttendanceRecorded(session models.Session, student models.Student, status string, ts time.Time)
}

// Config fixes the attendance policy. Window is how long the QR accepts
// scans; LateThreshold is the present/late cutoff measured from session
// creation.
type Config struct {
	Window        time.Duration
	LateThreshold time.Duration
	BaseURL       string
}

// Manager owns the session lifecycle: a session is ACTIVE from creation
// until its window elapses or it is purged, then EXPIRED for good. It never
// returns to ACTIVE.
type Manager struct {
	store    *Store
	ledger   Ledger
	dir      Directory
	archive  Archive
	notifier Notifier
	cfg      Config
}

func NewManager(store *Store, ledger Ledger, dir Directory, archive Archive, notifier Notifier, cfg Config) *Manager {
	return &Manager{
		store:    store,
		ledger:   ledger,
		dir:      dir,
		archive:  archive,
		notifier: notifier,
		cfg:      cfg,
	}
}

// ScanResult is the outcome of an accepted scan.
type ScanResult struct {
	Status      string
	StudentID   string
	StudentName string
	Subject     string
	Timestamp   time.Time
}

// CreateSession opens a new attendance window and returns the session along
// with the QR payload: a check-in URL carrying the session id. The id is a
// 128-bit random uuid, so collisions are not a practical concern.
func (m *Manager) CreateSession(facultyID, subject, room string, now time.Time) (models.Session, string, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		FacultyID: facultyID,
		Subject:   subject,
		Room:      room,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.Window),
	}
	payload := fmt.Sprintf("%s/checkin/%s", m.cfg.BaseURL, session.ID)

	err := m.archive.SaveSession(models.SessionRecord{
		SessionID: session.ID,
		FacultyID: facultyID,
		Subject:   subject,
		Room:      room,
		QRPayload: payload,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return models.Session{}, "", storageErr("save session", err)
	}

	m.store.Put(session)
	m.notifier.SessionCreated(session)
	log.Println("created session", session.ID, "for", facultyID)
	return session, payload, nil
}

// RecordScan validates a scan against the session window and records it.
// The checks run in a fixed order: unknown session, expired session, unknown
// student, duplicate pair. Expiry detection evicts the session from the
// store as a side effect. Repeated scans by the same student never create a
// second record and never change the first record's status.
func (m *Manager) RecordScan(sessionID, studentIdentifier string, scanTS time.Time) (ScanResult, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return ScanResult{}, ErrSessionNotFound
	}
	if session.Expired(scanTS) {
		m.store.Delete(sessionID)
		return ScanResult{}, ErrSessionExpired
	}

	student, found, err := m.dir.FindStudent(studentIdentifier)
	if err != nil {
		return ScanResult{}, storageErr("find student", err)
	}
	if !found {
		return ScanResult{}, ErrStudentNotFound
	}

	status := models.StatusLate
	if scanTS.Sub(session.CreatedAt) <= m.cfg.LateThreshold {
		status = models.StatusPresent
	}

	inserted, err := m.ledger.InsertIfAbsent(session.ID, student.StudentID, status, scanTS)
	if err != nil {
		return ScanResult{}, storageErr("insert attendance", err)
	}
	if !inserted {
		return ScanResult{}, ErrDuplicateScan
	}

	m.notifier.AttendanceRecorded(session, student, status, scanTS)
	return ScanResult{
		Status:      status,
		StudentID:   student.StudentID,
		StudentName: student.Name,
		Subject:     session.Subject,
		Timestamp:   scanTS,
	}, nil
}

// PurgeExpired drops sessions whose window ended before now. Safe to call
// concurrently with scans; a scan racing the sweep still fails closed
// because the scan path re-checks expiry.
func (m *Manager) PurgeExpired(now time.Time) int {
	return m.store.SweepExpired(now)
}

// RunSweeper purges expired sessions on a fixed interval until ctx is
// cancelled. Run it in its own goroutine and cancel on shutdown.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := m.PurgeExpired(now); removed > 0 {
				log.Println("swept", removed, "expired sessions")
			}
		}
	}
}
